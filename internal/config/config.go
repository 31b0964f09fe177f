package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Engine
	EngineDepth    int
	EngineParallel bool
	DemoDepths     [2]int
	DemoDelay      time.Duration
	SampleMoves    []int // 1-based, as typed by a player

	// Archive
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	ArchiveRetention     time.Duration

	// Decision cache
	RedisURL      string
	RedisPassword string
	CacheEnabled  bool
	CacheTTL      time.Duration

	// Spectators
	WatchAddr     string
	WatchSecret   string
	WatchTokenTTL time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	// ENGINE_DIFFICULTY is resolved by the caller; ENGINE_DEPTH wins when both are set.
	engineDepth := GetEnvAsInt("ENGINE_DEPTH", 3)
	demoDepth1 := GetEnvAsInt("DEMO_DEPTH_PLAYER1", 3)
	demoDepth2 := GetEnvAsInt("DEMO_DEPTH_PLAYER2", 2)
	demoDelayMs := GetEnvAsInt("DEMO_DELAY_MS", 500)

	retentionDays := GetEnvAsInt("ARCHIVE_RETENTION_DAYS", 30)
	cacheTTLMin := GetEnvAsInt("CACHE_TTL_MINUTES", 60)
	watchTTLMin := GetEnvAsInt("WATCH_TOKEN_TTL_MINUTES", 120)

	AppConfig = &Config{
		EngineDepth:    engineDepth,
		EngineParallel: GetEnvAsBool("ENGINE_PARALLEL", false),
		DemoDepths:     [2]int{demoDepth1, demoDepth2},
		DemoDelay:      time.Duration(demoDelayMs) * time.Millisecond,
		SampleMoves:    GetEnvAsIntList("SAMPLE_MOVES", []int{4, 3, 4, 5, 4, 2, 4}),

		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 5),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		ArchiveRetention:     time.Duration(retentionDays) * 24 * time.Hour,

		RedisURL:      GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		CacheEnabled:  GetEnvAsBool("CACHE_ENABLED", false),
		CacheTTL:      time.Duration(cacheTTLMin) * time.Minute,

		WatchAddr:     GetEnv("WATCH_ADDR", ""),
		WatchSecret:   GetEnv("WATCH_SECRET", ""),
		WatchTokenTTL: time.Duration(watchTTLMin) * time.Minute,
	}

	return AppConfig
}

// EngineDifficulty returns the raw ENGINE_DIFFICULTY value.
func EngineDifficulty() string {
	return GetEnv("ENGINE_DIFFICULTY", "")
}

// EngineDepthSet reports whether ENGINE_DEPTH was given explicitly.
func EngineDepthSet() bool {
	return os.Getenv("ENGINE_DEPTH") != ""
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("[CONFIG] Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsIntList parses a comma separated list such as "4,3,4".
func GetEnvAsIntList(key string, defaultValue []int) []int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	values, err := ParseIntList(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid list value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return values
}

func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
