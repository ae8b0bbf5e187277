package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// PresenceTTL is how long a device counts as live after its last heartbeat.
const PresenceTTL = 90 * time.Second

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// SetPresence refreshes the liveness key for a device. Heartbeats land here
// instead of hammering the devices table on every beat.
func SetPresence(ctx context.Context, deviceKey string) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, "presence:"+deviceKey, time.Now().Unix(), PresenceTTL).Err(); err != nil {
		log.Warn().Err(err).Str("device_key", deviceKey).Msg("failed to set presence")
	}
}

// ClearPresence drops the liveness key on disconnect.
func ClearPresence(ctx context.Context, deviceKey string) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Del(ctx, "presence:"+deviceKey).Err(); err != nil {
		log.Warn().Err(err).Str("device_key", deviceKey).Msg("failed to clear presence")
	}
}

// IsLive reports whether a device heartbeated within the presence TTL.
func IsLive(ctx context.Context, deviceKey string) bool {
	if Rdb == nil {
		return false
	}
	n, err := Rdb.Exists(ctx, "presence:"+deviceKey).Result()
	if err != nil {
		log.Warn().Err(err).Str("device_key", deviceKey).Msg("failed to check presence")
		return false
	}
	return n > 0
}
