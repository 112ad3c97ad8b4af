package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the server settings.
type Config struct {
	HTTPAddr          string
	RedisAddr         string // empty means in-process cache
	RedisPassword     string
	RedisDB           int
	CacheTTL          time.Duration
	SweepWorkers      int
	HistorySize       int
	RateLimitCapacity int
	RateLimitWindow   time.Duration
	LogLevel          logrus.Level
	AdvisorAPIKey     string
	AdvisorAPIURL     string
}

// LoadConfig reads .env (if present) and the process environment.
// Variables already set in the environment win over .env.
func LoadConfig(logger logrus.FieldLogger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Warn(".env file not found, using environment only")
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		CacheTTL:          getEnvDuration("CACHE_TTL", time.Hour),
		SweepWorkers:      getEnvInt("SWEEP_WORKERS", runtime.NumCPU()),
		HistorySize:       getEnvInt("HISTORY_SIZE", 100),
		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 5),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		LogLevel:          level,
		AdvisorAPIKey:     os.Getenv("OPENAI_API_KEY"),
		AdvisorAPIURL:     os.Getenv("OPENAI_API_URL"),
	}, nil
}

// getEnv returns the variable or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}
