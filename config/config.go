package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Cache   CacheConfig
	Logger  LoggerConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	Path string
}

type CacheConfig struct {
	ProductMaxAge time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// LoadEnv reads configuration from the environment, honoring a .env file
// when one is present next to the process.
func LoadEnv() *Config {
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("CASHIER_API_URL", "https://cashier-api.faizlzm.com/api"),
			Timeout: getEnvDuration("CASHIER_API_TIMEOUT", 15*time.Second),
		},
		Storage: StorageConfig{
			Path: getEnv("CASHIER_DB_PATH", "cashier.db"),
		},
		Cache: CacheConfig{
			ProductMaxAge: getEnvDuration("CASHIER_PRODUCT_CACHE_MAX_AGE", 24*time.Hour),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
