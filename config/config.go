package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"shoeshop/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port  string
	JWT   JWT
	DB    DB
	Redis Redis
	Kafka Kafka
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessExp time.Duration
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Brokers []string // пусто — события отключены
	Topic   string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnv("JWT_ISSUER", log),
			Audience:  getEnv("JWT_AUDIENCE", log),
			AccessExp: parseDurationDefault(os.Getenv("ACCESS_EXP"), 12*time.Hour),
		},
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		Redis: Redis{
			Enabled:    os.Getenv("REDIS_ENABLED") == "true",
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
		Kafka: Kafka{
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:   envDefault("KAFKA_TOPIC_ORDERS", "shoeshop.orders"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func envDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func parseDurationDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
