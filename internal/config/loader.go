package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage driver names accepted by MEETINGS_STORAGE_DRIVER.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config captures environment driven configuration values for the meeting service.
type Config struct {
	HTTPPort       int
	StorageDriver  string
	SQLiteDSN      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// required values and reporting localized error messages for missing entries.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:       8080,
		StorageDriver:  DriverMemory,
		SQLiteDSN:      "file:meetings.db?_foreign_keys=on",
		RedisKeyPrefix: "meetings:",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("MEETINGS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "MEETINGS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if driver := strings.TrimSpace(os.Getenv("MEETINGS_STORAGE_DRIVER")); driver != "" {
		switch driver {
		case DriverMemory, DriverSQLite, DriverRedis:
			cfg.StorageDriver = driver
		default:
			invalid = append(invalid, "MEETINGS_STORAGE_DRIVER")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("MEETINGS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if addr := strings.TrimSpace(os.Getenv("MEETINGS_REDIS_ADDR")); addr != "" {
		cfg.RedisAddr = addr
	} else if cfg.StorageDriver == DriverRedis {
		missing = append(missing, "MEETINGS_REDIS_ADDR")
	}

	cfg.RedisPassword = os.Getenv("MEETINGS_REDIS_PASSWORD")

	if dbValue := strings.TrimSpace(os.Getenv("MEETINGS_REDIS_DB")); dbValue != "" {
		db, err := strconv.Atoi(dbValue)
		if err != nil || db < 0 {
			invalid = append(invalid, "MEETINGS_REDIS_DB")
		} else {
			cfg.RedisDB = db
		}
	}

	if prefix := strings.TrimSpace(os.Getenv("MEETINGS_REDIS_KEY_PREFIX")); prefix != "" {
		cfg.RedisKeyPrefix = prefix
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("必須の環境変数が設定されていません: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("環境変数の値が不正です: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
