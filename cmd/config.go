package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"ferryops/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	JWTTTL    time.Duration

	KafkaBrokers             []string
	KafkaOrderChangedTopic   string
	KafkaBookingChangedTopic string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LowStockSchedule          string
	BookingCompletionSchedule string
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_TTL: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}

	cfg := Config{
		AppEnv:                    getEnv("APP_ENV", "development"),
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		DBHost:                    getEnv("DB_HOST", "localhost"),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "postgres"),
		DBPassword:                os.Getenv("DB_PASSWORD"),
		DBName:                    getEnv("DB_NAME", "ferryops"),
		DBSslMode:                 getEnv("DB_SSLMODE", "disable"),
		JWTSecret:                 os.Getenv("JWT_SECRET"),
		JWTTTL:                    jwtTTL,
		KafkaBrokers:              splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderChangedTopic:    getEnv("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		KafkaBookingChangedTopic:  getEnv("KAFKA_BOOKING_CHANGED_TOPIC", "booking.changed"),
		RedisAddr:                 os.Getenv("REDIS_ADDR"),
		RedisPassword:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   redisDB,
		LowStockSchedule:          getEnv("LOW_STOCK_SCHEDULE", "0 */15 * * * *"),
		BookingCompletionSchedule: getEnv("BOOKING_COMPLETION_SCHEDULE", "0 5 0 * * *"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
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

func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
