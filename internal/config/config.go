package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/subosito/gotenv"
)

// Config holds the runtime settings of the sentimento binary.
type Config struct {
	Addr       string
	Seed       int64
	LogLevel   string
	Vocabulary string // optional YAML lexicon override
	ModelPath  string // optional saved model served before any upload

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	UploadRate  float64 // dataset uploads per second; 0 disables the limit
	UploadBurst int
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:     ":8080",
		Seed:     1,
		LogLevel: "info",
		CacheTTL: 24 * time.Hour,

		UploadRate:  1,
		UploadBurst: 5,
	}
}

// EnvFile returns the dotenv file for env: config/envs/.env.<env>, or .env
// when env is empty.
func EnvFile(env string) string {
	if env == "" {
		return ".env"
	}
	return "config/envs/.env." + env
}

// LoadEnv loads the dotenv file of env into the process environment without
// overriding variables that are already set.
func LoadEnv(env string) {
	envFile := EnvFile(env)
	if err := gotenv.Load(envFile); err != nil {
		slog.Debug("No .env file found, using OS environment", slog.String("file", envFile))
	}
}

// Load reads the dotenv file of env and then the environment.
func Load(env string) (Config, error) {
	LoadEnv(env)
	return FromEnv()
}

// FromEnv builds a Config from environment variables over the defaults.
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv("SENTIMENTO_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("SENTIMENTO_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	cfg.Vocabulary = os.Getenv("SENTIMENTO_VOCABULARY")
	cfg.ModelPath = os.Getenv("SENTIMENTO_MODEL")
	cfg.RedisAddress = os.Getenv("REDIS_ADDRESS")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if v := os.Getenv("SENTIMENTO_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("SENTIMENTO_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}
	if v := os.Getenv("SENTIMENTO_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("SENTIMENTO_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	if v := os.Getenv("SENTIMENTO_UPLOAD_RATE"); v != "" {
		perSecond, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("SENTIMENTO_UPLOAD_RATE: %w", err)
		}
		cfg.UploadRate = perSecond
	}
	if v := os.Getenv("SENTIMENTO_UPLOAD_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("SENTIMENTO_UPLOAD_BURST: %w", err)
		}
		cfg.UploadBurst = burst
	}

	return cfg, nil
}
