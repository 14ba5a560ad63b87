package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	APIBaseURL     string
	APIToken       string
	ViewerID       string
	RedisAddr      string
	RedisPassword  string
	ChannelPrefix  string
	RequestTimeout time.Duration
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Env:            getEnv("ENV", "development"),
		APIBaseURL:     getEnv("DESK_API_URL", "http://localhost:8080"),
		APIToken:       getEnv("DESK_API_TOKEN", ""),
		ViewerID:       getEnv("DESK_VIEWER_ID", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		ChannelPrefix:  getEnv("CHANNEL_PREFIX", "desk"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
