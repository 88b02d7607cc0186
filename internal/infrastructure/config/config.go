package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	sharedConfig "github.com/tasknest/tasknest/internal/shared/config"
)

const envPrefix = "TASKNEST"

const (
	SessionStoreGorm  = "gorm"
	SessionStoreRedis = "redis"
	SessionStoreMongo = "mongo"
)

type Config struct {
	Server    sharedConfig.ServerConfig       `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis     sharedConfig.RedisConfig        `mapstructure:"redis"`
	Mongo     sharedConfig.MongoConfig        `mapstructure:"mongo"`
	Session   sharedConfig.SessionStoreConfig `mapstructure:"session"`
	RateLimit sharedConfig.RateLimitConfig    `mapstructure:"ratelimit"`
	Todolists sharedConfig.TodolistConfig     `mapstructure:"todolists"`
	Metrics   sharedConfig.MetricsConfig      `mapstructure:"metrics"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (optional) and TASKNEST_* environment variables.
// A non-empty env other than "default" overrides server.mode.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects configurations the auth core cannot run with.
func (c *Config) Validate() error {
	jwt := c.Auth.JWT
	if jwt.AccessSecret == "" || jwt.RefreshSecret == "" {
		return fmt.Errorf("auth.jwt.access_secret and auth.jwt.refresh_secret are required")
	}
	if jwt.AccessSecret == jwt.RefreshSecret {
		return fmt.Errorf("auth.jwt access and refresh secrets must differ")
	}
	if jwt.AccessExpMinutes <= 0 || jwt.RefreshExpDays <= 0 || jwt.RememberExpDays <= 0 {
		return fmt.Errorf("auth.jwt expirations must be positive")
	}

	switch c.Session.Store {
	case SessionStoreGorm, SessionStoreRedis, SessionStoreMongo:
	default:
		return fmt.Errorf("unsupported session.store %q", c.Session.Store)
	}

	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	if c.Todolists.MaxPerUser <= 0 {
		return fmt.Errorf("todolists.max_per_user must be positive")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.api_keys", []string{})

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "tasknest_dev")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.access_secret", "")
	v.SetDefault("auth.jwt.refresh_secret", "")
	v.SetDefault("auth.jwt.access_exp_minutes", 15)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)
	v.SetDefault("auth.jwt.remember_exp_days", 30)
	v.SetDefault("auth.jwt.issuer", "tasknest")
	v.SetDefault("auth.session.token_hash_cost", 10)
	v.SetDefault("auth.cookie.domain", "")
	v.SetDefault("auth.cookie.path", "/api/v1/auth")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Strict")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Mongo defaults
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "tasknest")

	// Session store defaults
	v.SetDefault("session.store", SessionStoreGorm)
	v.SetDefault("session.purge_interval", time.Hour)

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.window", 60*time.Second)
	v.SetDefault("ratelimit.limit", 10)

	v.SetDefault("todolists.max_per_user", 10)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
