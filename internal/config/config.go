// Package config loads server settings from the environment, an optional
// .env file and an optional config file named by CONFIG_FILE.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/allocash/internal/lock"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	// HTTP Server
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Storage
	StorageBackend string
	DBPath         string
	MongoURI       string
	MongoDatabase  string

	// Identity
	JWTSecret string

	// Settlement lock
	SettleLock    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockExpiry    time.Duration
}

// Load reads .env if present, then CONFIG_FILE if set, then the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("storage_backend", BackendSQLite)
	v.SetDefault("db_path", "./data/allocash.db")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", "budget_planner")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("settle_lock", lock.BackendMemory)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("lock_expiry", 10*time.Second)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:            v.GetInt("port"),
		AllowedOrigins:  splitList(v.GetString("allowed_origins")),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		LogFormat:       strings.ToLower(v.GetString("log_format")),
		StorageBackend:  strings.ToLower(v.GetString("storage_backend")),
		DBPath:          v.GetString("db_path"),
		MongoURI:        v.GetString("mongo_uri"),
		MongoDatabase:   v.GetString("mongo_database"),
		JWTSecret:       v.GetString("jwt_secret"),
		SettleLock:      strings.ToLower(v.GetString("settle_lock")),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		RedisDB:         v.GetInt("redis_db"),
		LockExpiry:      v.GetDuration("lock_expiry"),
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	switch c.StorageBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			errs = append(errs, "DB_PATH cannot be empty when using the sqlite backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			errs = append(errs, "MONGO_URI is required when using the mongo backend")
		}
		if c.MongoDatabase == "" {
			errs = append(errs, "MONGO_DATABASE cannot be empty when using the mongo backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid storage backend '%s': must be sqlite or mongo", c.StorageBackend))
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if !lock.ValidBackend(c.SettleLock) {
		errs = append(errs, fmt.Sprintf("invalid settle lock '%s': must be none, memory or redis", c.SettleLock))
	}
	if c.SettleLock == lock.BackendRedis && c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required when SETTLE_LOCK=redis")
	}
	if c.LockExpiry <= 0 {
		errs = append(errs, "LOCK_EXPIRY must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
