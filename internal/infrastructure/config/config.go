package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	HTTPPort      int
	MetricsPort   int
	ServiceName   string
	MigrationsDir string
	DB            DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	JWT           JWTConfig
	Log           LogConfig
}

// Load reads configuration from the environment with sensible development
// defaults. Every key can be overridden via its environment variable.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("METRICS_PORT", 9090)
	v.SetDefault("SERVICE_NAME", "loansd")
	v.SetDefault("MIGRATIONS_DIR", "file://./migrations")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "loans")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "loansdb")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "loan-events")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "loans")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	expiration, err := time.ParseDuration(v.GetString("JWT_EXPIRATION"))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse JWT_EXPIRATION: %w", err)
	}

	cfg := Config{
		HTTPPort:      v.GetInt("HTTP_PORT"),
		MetricsPort:   v.GetInt("METRICS_PORT"),
		ServiceName:   v.GetString("SERVICE_NAME"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: int32(v.GetInt("DB_MAX_CONNS")),
			MinConns: int32(v.GetInt("DB_MIN_CONNS")),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Issuer:     v.GetString("JWT_ISSUER"),
			Expiration: expiration,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.JWT.Secret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
