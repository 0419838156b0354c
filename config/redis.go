package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type RedisConfig struct {
	Addr     string
	Password string
	LockTtl  time.Duration
}

func GetRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR must be set")
	}

	// Upper bound on how long a crashed generation can hold its lock.
	lockTtl := 3 * time.Minute
	if raw := os.Getenv("GENERATION_LOCK_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse GENERATION_LOCK_TTL_SECONDS")
		}
		lockTtl = time.Duration(seconds) * time.Second
	}

	return &RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		LockTtl:  lockTtl,
	}, nil
}
