package config

import (
	"os"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"MEETINGS_HTTP_PORT",
			"MEETINGS_STORAGE_DRIVER",
			"MEETINGS_SQLITE_DSN",
			"MEETINGS_REDIS_ADDR",
			"MEETINGS_REDIS_PASSWORD",
			"MEETINGS_REDIS_DB",
			"MEETINGS_REDIS_KEY_PREFIX",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.StorageDriver != DriverMemory {
			t.Fatalf("expected default driver %q, got %q", DriverMemory, cfg.StorageDriver)
		}
		if cfg.SQLiteDSN != "file:meetings.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.RedisKeyPrefix != "meetings:" {
			t.Fatalf("unexpected default key prefix: %q", cfg.RedisKeyPrefix)
		}
	})

	t.Run("errors when the redis driver lacks an address", func(t *testing.T) {
		t.Setenv("MEETINGS_STORAGE_DRIVER", "redis")
		if err := os.Unsetenv("MEETINGS_REDIS_ADDR"); err != nil {
			t.Fatalf("failed to unset MEETINGS_REDIS_ADDR: %v", err)
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when redis address is missing")
		}
		expected := "必須の環境変数が設定されていません: MEETINGS_REDIS_ADDR"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("rejects unknown storage drivers", func(t *testing.T) {
		t.Setenv("MEETINGS_STORAGE_DRIVER", "postgres")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for unsupported driver")
		}
		expected := "環境変数の値が不正です: MEETINGS_STORAGE_DRIVER"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses numeric fields and redis settings", func(t *testing.T) {
		t.Setenv("MEETINGS_HTTP_PORT", "9090")
		t.Setenv("MEETINGS_STORAGE_DRIVER", "redis")
		t.Setenv("MEETINGS_REDIS_ADDR", "redis.internal:6380")
		t.Setenv("MEETINGS_REDIS_PASSWORD", "hunter2")
		t.Setenv("MEETINGS_REDIS_DB", "3")
		t.Setenv("MEETINGS_REDIS_KEY_PREFIX", "booking:")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.StorageDriver != DriverRedis {
			t.Fatalf("expected driver %q, got %q", DriverRedis, cfg.StorageDriver)
		}
		if cfg.RedisAddr != "redis.internal:6380" {
			t.Fatalf("unexpected redis addr: %q", cfg.RedisAddr)
		}
		if cfg.RedisPassword != "hunter2" {
			t.Fatalf("unexpected redis password: %q", cfg.RedisPassword)
		}
		if cfg.RedisDB != 3 {
			t.Fatalf("expected redis db 3, got %d", cfg.RedisDB)
		}
		if cfg.RedisKeyPrefix != "booking:" {
			t.Fatalf("unexpected key prefix: %q", cfg.RedisKeyPrefix)
		}
	})

	t.Run("rejects malformed numeric values", func(t *testing.T) {
		t.Setenv("MEETINGS_HTTP_PORT", "-1")
		if err := os.Unsetenv("MEETINGS_STORAGE_DRIVER"); err != nil {
			t.Fatalf("failed to unset MEETINGS_STORAGE_DRIVER: %v", err)
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for negative port")
		}
		expected := "環境変数の値が不正です: MEETINGS_HTTP_PORT"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
