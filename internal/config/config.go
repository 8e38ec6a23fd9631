// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"region-path-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	WorldPath      string
	DatabaseURL    string
	RedisURL       string
	MatrixCacheTTL time.Duration
	// Configured planner defaults. Unset variables stay nil so built-in defaults apply.
	MoveDefaults domain.MoveOpts
}

// Load .env (if present) into the environment, then read the configuration.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config: read env file: %w", err)
		}
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// Read the configuration from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		WorldPath:   Get("WORLD_PATH", "data/world.yaml"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
	}

	ttl, err := time.ParseDuration(Get("MATRIX_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: MATRIX_CACHE_TTL: %w", err)
	}
	if ttl < 0 {
		return Config{}, fmt.Errorf("load config: MATRIX_CACHE_TTL must not be negative (got %s)", ttl)
	}
	cfg.MatrixCacheTTL = ttl

	ints := []struct {
		key string
		dst **int
	}{
		{"DEFAULT_MAX_OPS", &cfg.MoveDefaults.MaxOps},
		{"DEFAULT_MAX_OPS_PER_ROOM", &cfg.MoveDefaults.MaxOpsPerRoom},
		{"DEFAULT_MAX_ROOMS", &cfg.MoveDefaults.MaxRooms},
		{"DEFAULT_ROAD_COST", &cfg.MoveDefaults.RoadCost},
		{"DEFAULT_PLAIN_COST", &cfg.MoveDefaults.PlainCost},
		{"DEFAULT_SWAMP_COST", &cfg.MoveDefaults.SwampCost},
	}
	for _, v := range ints {
		n, ok, err := lookupInt(v.key)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if ok {
			*v.dst = domain.Ptr(n)
		}
	}

	return cfg, nil
}

// Return the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func lookupInt(key string) (int, bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return n, true, nil
}
