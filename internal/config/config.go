package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User        string
	Password    string
	Name        string
	Host        string
	Port        int
	SSLMode     string
	AutoMigrate bool
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type RateLimitConfig struct {
	BookingLimit  int
	BookingWindow time.Duration
}

// DSN builds a pgx connection string from the postgres settings.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	postgresHost := os.Getenv("POSTGRES_HOST")
	if postgresHost == "" {
		postgresHost = "localhost"
	}

	postgresPortStr := os.Getenv("POSTGRES_PORT")
	if postgresPortStr == "" {
		postgresPortStr = "5432"
	}

	postgresPort, err := strconv.Atoi(postgresPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if postgresSSLMode == "" {
		postgresSSLMode = "disable"
	}

	autoMigrate := os.Getenv("AUTO_MIGRATE") == "true"

	postgresCfg := PostgresConfig{
		User:        postgresUser,
		Password:    postgresPassword,
		Name:        postgresDB,
		Host:        postgresHost,
		Port:        postgresPort,
		SSLMode:     postgresSSLMode,
		AutoMigrate: autoMigrate,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("%s: missing JWT_SECRET", op)
	}

	tokenTTLStr := os.Getenv("TOKEN_TTL")
	if tokenTTLStr == "" {
		tokenTTLStr = "24h"
	}

	tokenTTL, err := time.ParseDuration(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid TOKEN_TTL: %w", op, err)
	}

	authCfg := AuthConfig{
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
	}

	rlLimitStr := os.Getenv("BOOKING_RATE_LIMIT")
	if rlLimitStr == "" {
		rlLimitStr = "10"
	}

	rlLimit, err := strconv.Atoi(rlLimitStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid BOOKING_RATE_LIMIT: %w", op, err)
	}

	rlWindowStr := os.Getenv("BOOKING_RATE_WINDOW")
	if rlWindowStr == "" {
		rlWindowStr = "1m"
	}

	rlWindow, err := time.ParseDuration(rlWindowStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid BOOKING_RATE_WINDOW: %w", op, err)
	}

	rateLimitCfg := RateLimitConfig{
		BookingLimit:  rlLimit,
		BookingWindow: rlWindow,
	}

	return &Config{
		Server:    serverCfg,
		Postgres:  postgresCfg,
		Redis:     redisCfg,
		Auth:      authCfg,
		RateLimit: rateLimitCfg,
	}, nil
}
