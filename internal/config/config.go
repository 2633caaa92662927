package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "STAKEHUB_CONFIG"

// Config holds all runtime settings for the server and the batch commands
type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Mongo MongoConfig `yaml:"mongo"`
	Redis RedisConfig `yaml:"redis"`
	Auth  AuthConfig  `yaml:"auth"`
	AI    AIConfig    `yaml:"ai"`
	Log   LogConfig   `yaml:"log"`
}

// HTTPConfig configures the REST listener
type HTTPConfig struct {
	Port           string `yaml:"port"`
	AllowedOrigins string `yaml:"allowedOrigins"`
}

// MongoConfig describes the record store
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig describes the cache
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// AuthConfig holds the single account credentials and the token secret
type AuthConfig struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"-"`
	JWTSecret string `yaml:"-"`
}

// LogConfig selects the zap encoder and level
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads .env and an optional YAML file, then applies environment overrides.
func Load() (*Config, error) {
	// .env is optional in every environment
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:           "8080",
			AllowedOrigins: "*",
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "stakehub",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Auth: AuthConfig{
			Username:  "admin",
			Password:  "password123",
			JWTSecret: "change-me-in-production",
		},
		AI: DefaultAIConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (c *Config) applyEnvOverrides() {
	setString(&c.HTTP.Port, "PORT")
	setString(&c.HTTP.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setString(&c.Mongo.URI, "MONGO_URI")
	setString(&c.Mongo.Database, "MONGO_DB")
	setString(&c.Redis.Addr, "REDIS_URI")
	setString(&c.Auth.Username, "APP_USERNAME")
	setString(&c.Auth.Password, "APP_PASSWORD")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.AI.APIKey, "GEMINI_API_KEY")
	setString(&c.AI.Model, "GEMINI_MODEL")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("GEMINI_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.AI.TimeoutMS = ms
		}
	}

	// Remove redis:// prefix if present
	c.Redis.Addr = strings.TrimPrefix(c.Redis.Addr, "redis://")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
