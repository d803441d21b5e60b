package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories depend on an interface
// we control rather than on the driver type directly.
type Client interface {
	redis.UniversalClient
}
