package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string

	// Optional integrations. Empty means disabled.
	RabbitURL string
	RedisAddr string

	CacheTTLSeconds    int
	MaxTicketsPerOrder int
	SeedOnStart        bool
}

func Load() *Config {
	// Missing .env is fine; plain env vars still apply.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "eventlook"),
		DBPassword: getEnv("DB_PASSWORD", "eventlook"),
		DBName:     getEnv("DB_NAME", "eventlook"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		RabbitURL: os.Getenv("RABBITMQ_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		CacheTTLSeconds:    getEnvInt("CACHE_TTL_SECONDS", 30),
		MaxTicketsPerOrder: getEnvInt("MAX_TICKETS_PER_ORDER", 10),
		SeedOnStart:        getEnvBool("SEED_ON_START", true),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
