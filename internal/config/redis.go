package config

import (
	"os"
	"sync"
)

type RedisConfig struct {
	URL string // e.g. "redis://localhost:6379/0"; empty disables analytics
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = &RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		}
	})
	return redisConfig
}
