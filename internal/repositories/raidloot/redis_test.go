package raidloot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/entities/raids"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/pkg/clock"
	"github.com/tetrisdev/SPTServer/internal/repositories/raidloot"
	"github.com/tetrisdev/SPTServer/internal/testutils"
)

func testLayout() *raids.LootLayout {
	return &raids.LootLayout{
		RaidID:     "raid_1",
		LocationID: "bigmap",
		Containers: []raids.ContainerLoot{
			{
				ContainerID: "crate_1",
				TemplateID:  "tpl_crate",
				Items: []items.Node{
					{ID: "n_1", TemplateID: "tpl_crate"},
					{ID: "n_2", TemplateID: "tpl_food", ParentID: "n_1", SlotID: "main",
						Location: &items.Location{X: 0, Y: 0, Rotation: items.RotationHorizontal}},
				},
			},
		},
	}
}

func TestRedisRepository_CreateAndGet(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	now := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	repo, err := raidloot.NewRedis(&raidloot.RedisConfig{
		Client: client,
		Clock:  &clock.Fixed{T: now},
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Create(ctx, raidloot.CreateInput{Layout: testLayout()})
	require.NoError(t, err)

	out, err := repo.Get(ctx, raidloot.GetInput{RaidID: "raid_1"})
	require.NoError(t, err)
	assert.Equal(t, "bigmap", out.Layout.LocationID)
	assert.Equal(t, now.Unix(), out.Layout.GeneratedAt)
	require.Len(t, out.Layout.Containers, 1)
	assert.Len(t, out.Layout.Containers[0].Items, 2)
}

func TestRedisRepository_CreateReplacesExisting(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	repo, err := raidloot.NewRedis(&raidloot.RedisConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Create(ctx, raidloot.CreateInput{Layout: testLayout()})
	require.NoError(t, err)

	second := testLayout()
	second.LocationID = "factory"
	_, err = repo.Create(ctx, raidloot.CreateInput{Layout: second})
	require.NoError(t, err)

	out, err := repo.Get(ctx, raidloot.GetInput{RaidID: "raid_1"})
	require.NoError(t, err)
	assert.Equal(t, "factory", out.Layout.LocationID)
}

func TestRedisRepository_GetMissingReturnsNotFound(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	repo, err := raidloot.NewRedis(&raidloot.RedisConfig{Client: client})
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), raidloot.GetInput{RaidID: "nope"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestRedisRepository_LayoutExpires(t *testing.T) {
	mr, client, cleanup := testutils.CreateTestRedisServer(t)
	defer cleanup()

	repo, err := raidloot.NewRedis(&raidloot.RedisConfig{
		Client: client,
		TTL:    time.Minute,
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Create(ctx, raidloot.CreateInput{Layout: testLayout()})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = repo.Get(ctx, raidloot.GetInput{RaidID: "raid_1"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestRedisRepository_Delete(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	repo, err := raidloot.NewRedis(&raidloot.RedisConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Create(ctx, raidloot.CreateInput{Layout: testLayout()})
	require.NoError(t, err)

	_, err = repo.Delete(ctx, raidloot.DeleteInput{RaidID: "raid_1"})
	require.NoError(t, err)

	_, err = repo.Get(ctx, raidloot.GetInput{RaidID: "raid_1"})
	assert.True(t, errors.IsNotFound(err))
}

func TestRedisRepository_ValidatesInput(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	repo, err := raidloot.NewRedis(&raidloot.RedisConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()

	_, err = repo.Create(ctx, raidloot.CreateInput{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Create(ctx, raidloot.CreateInput{Layout: &raids.LootLayout{LocationID: "bigmap"}})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Get(ctx, raidloot.GetInput{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.Delete(ctx, raidloot.DeleteInput{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewRedis_RequiresClient(t *testing.T) {
	_, err := raidloot.NewRedis(&raidloot.RedisConfig{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
