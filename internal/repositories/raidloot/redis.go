package raidloot

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tetrisdev/SPTServer/internal/entities/raids"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/pkg/clock"
	redisclient "github.com/tetrisdev/SPTServer/internal/redis"
)

const (
	layoutKeyPrefix = "raidloot:"

	// A raid never outlives this; stale layouts expire on their own.
	defaultTTL = 2 * time.Hour

	// Error messages
	errLayoutNil     = "layout cannot be nil"
	errRaidIDEmpty   = "raid ID cannot be empty"
	errLocationEmpty = "location ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// RedisConfig contains configuration for the Redis raid loot repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock

	// TTL defaults to two hours when zero.
	TTL time.Duration
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed raid loot repository.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    ttl,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.RaidID == "" {
		return nil, errors.InvalidArgument(errRaidIDEmpty)
	}
	if input.Layout.LocationID == "" {
		return nil, errors.InvalidArgument(errLocationEmpty)
	}

	if input.Layout.GeneratedAt == 0 {
		input.Layout.GeneratedAt = r.clock.Now().Unix()
	}

	data, err := json.Marshal(input.Layout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	key := layoutKeyPrefix + input.Layout.RaidID
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to cache layout")
	}

	return &CreateOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RaidID == "" {
		return nil, errors.InvalidArgument(errRaidIDEmpty)
	}

	key := layoutKeyPrefix + input.RaidID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no layout cached for raid %s", input.RaidID)
		}
		return nil, errors.Wrapf(err, "failed to get layout")
	}

	var layout raids.LootLayout
	if err := json.Unmarshal([]byte(result), &layout); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal layout")
	}

	return &GetOutput{Layout: &layout}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.RaidID == "" {
		return nil, errors.InvalidArgument(errRaidIDEmpty)
	}

	key := layoutKeyPrefix + input.RaidID
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete layout")
	}

	return &DeleteOutput{}, nil
}
