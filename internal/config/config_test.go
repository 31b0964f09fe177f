package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ENGINE_DEPTH", "ENGINE_PARALLEL", "DEMO_DEPTH_PLAYER1", "DEMO_DEPTH_PLAYER2",
		"DEMO_DELAY_MS", "SAMPLE_MOVES", "DATABASE_URL", "DATABASE_URI",
		"CACHE_ENABLED", "REDIS_URL", "WATCH_ADDR", "ARCHIVE_RETENTION_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.EngineDepth != 3 {
		t.Errorf("EngineDepth = %d, want 3", cfg.EngineDepth)
	}
	if cfg.DemoDepths != [2]int{3, 2} {
		t.Errorf("DemoDepths = %v, want [3 2]", cfg.DemoDepths)
	}
	if cfg.DemoDelay != 500*time.Millisecond {
		t.Errorf("DemoDelay = %v", cfg.DemoDelay)
	}
	if !reflect.DeepEqual(cfg.SampleMoves, []int{4, 3, 4, 5, 4, 2, 4}) {
		t.Errorf("SampleMoves = %v", cfg.SampleMoves)
	}
	if cfg.EngineParallel || cfg.CacheEnabled {
		t.Error("parallel search and cache should default off")
	}
	if cfg.RedisURL != "localhost:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.ArchiveRetention != 30*24*time.Hour {
		t.Errorf("ArchiveRetention = %v", cfg.ArchiveRetention)
	}
	if AppConfig != cfg {
		t.Error("AppConfig not set")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENGINE_DEPTH", "5")
	t.Setenv("ENGINE_PARALLEL", "true")
	t.Setenv("DEMO_DEPTH_PLAYER2", "4")
	t.Setenv("SAMPLE_MOVES", "1, 2 ,3")
	t.Setenv("CACHE_TTL_MINUTES", "10")
	t.Setenv("DATABASE_URI", "postgres://legacy")

	cfg := LoadConfig()
	if cfg.EngineDepth != 5 || !cfg.EngineParallel {
		t.Errorf("engine = %d/%t", cfg.EngineDepth, cfg.EngineParallel)
	}
	if cfg.DemoDepths[1] != 4 {
		t.Errorf("DemoDepths = %v", cfg.DemoDepths)
	}
	if !reflect.DeepEqual(cfg.SampleMoves, []int{1, 2, 3}) {
		t.Errorf("SampleMoves = %v", cfg.SampleMoves)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.DatabaseURL != "postgres://legacy" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if !EngineDepthSet() {
		t.Error("EngineDepthSet should be true")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "three")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_LIST", "1,two")

	if got := GetEnvAsInt("X_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt = %d", got)
	}
	if got := GetEnvAsBool("X_BOOL", true); !got {
		t.Error("GetEnvAsBool should fall back to true")
	}
	if got := GetEnvAsIntList("X_LIST", []int{9}); !reflect.DeepEqual(got, []int{9}) {
		t.Errorf("GetEnvAsIntList = %v", got)
	}
	if got := GetEnv("X_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q", got)
	}
}
