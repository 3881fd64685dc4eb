package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ReservationBackendPostgres = "postgres"
	ReservationBackendRedis    = "redis"
)

// ErrInvalidConfig конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	Redis        RedisConfig        `toml:"redis"`
	Reservations ReservationsConfig `toml:"reservations"`
	Booking      BookingConfig      `toml:"booking"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"` // пусто - stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig сервис авторизации, таймаут в секундах
type AuthConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// ReservationsConfig хранилище временных удержаний
type ReservationsConfig struct {
	Backend    string `toml:"backend"` // postgres | redis
	TTLMinutes int    `toml:"ttl_minutes"`
}

type BookingConfig struct {
	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
}

// RateLimitConfig ограничение публичных маршрутов по клиенту
type RateLimitConfig struct {
	Enabled        bool    `toml:"enabled"`
	RPS            float64 `toml:"rps"`
	Burst          int     `toml:"burst"`
	IdleTTLSeconds int     `toml:"idle_ttl_seconds"`
}

// Load читает TOML файл, подмешивает .env и переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения, которые файл может не указывать
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:         LogsConfig{Level: "info"},
		Metrics:      MetricsConfig{Path: "/metrics", ServiceName: "salon_booking"},
		Auth:         AuthConfig{Timeout: 5},
		Redis:        RedisConfig{Addr: "localhost:6379", KeyPrefix: "salon"},
		Reservations: ReservationsConfig{Backend: ReservationBackendPostgres, TTLMinutes: 10},
		Booking:      BookingConfig{SlotGranularityMinutes: 30},
		RateLimit:    RateLimitConfig{Enabled: true, RPS: 5, Burst: 10, IdleTTLSeconds: 600},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("AUTH_URL"); v != "" {
		c.Auth.URL = v
	}
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port out of range")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Auth.URL == "" {
		problems = append(problems, "auth.url is required")
	}
	switch c.Reservations.Backend {
	case ReservationBackendPostgres:
	case ReservationBackendRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for redis reservations")
		}
	default:
		problems = append(problems, fmt.Sprintf("reservations.backend %q is unknown", c.Reservations.Backend))
	}
	if c.Reservations.TTLMinutes <= 0 {
		problems = append(problems, "reservations.ttl_minutes must be positive")
	}
	if g := c.Booking.SlotGranularityMinutes; g <= 0 || g > 24*60 {
		problems = append(problems, "booking.slot_granularity_minutes out of range")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
