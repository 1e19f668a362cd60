package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	EventsDriverRedis = "redis"
	EventsDriverLog   = "log"

	// MaxSweepIntervalSeconds автозавершение должно проверяться не реже раза в минуту
	MaxSweepIntervalSeconds = 60
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	SalonService  ServiceClientConfig `toml:"salon_service"`
	IncomeService ServiceClientConfig `toml:"income_service"`
	Events        EventsConfig        `toml:"events"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Salons        []SalonConfig       `toml:"salons"`
}

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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceClientConfig настройки HTTP клиента внешнего сервиса.
// Пустой URL отключает интеграцию.
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// TimeoutDuration таймаут клиента
func (s ServiceClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

type EventsConfig struct {
	Driver        string `toml:"driver"` // redis | log
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Channel       string `toml:"channel"`
}

type SchedulerConfig struct {
	SweepIntervalSeconds int    `toml:"sweep_interval_seconds"`
	SweepTimeoutSeconds  int    `toml:"sweep_timeout_seconds"`
	Timezone             string `toml:"timezone"`
}

// SweepInterval период автозавершения
func (s SchedulerConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

// SweepTimeout таймаут одного прохода автозавершения
func (s SchedulerConfig) SweepTimeout() time.Duration {
	return time.Duration(s.SweepTimeoutSeconds) * time.Second
}

// Location часовой пояс салонов, по которому считаются "сегодня" и время окончания
func (s SchedulerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// SalonConfig статические настройки салона (используются без SalonService)
type SalonConfig struct {
	ID                  int64             `toml:"id"`
	Name                string            `toml:"name"`
	SlotDurationMinutes int               `toml:"slot_duration_minutes"`
	WorkingHours        map[string]string `toml:"working_hours"` // "monday" = "09:00-18:00"
	Services            []ServiceConfig   `toml:"services"`
}

type ServiceConfig struct {
	ID              int64   `toml:"id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
}

// Load читает конфигурацию из TOML файла, затем применяет переменные окружения
// (в том числе из .env, если файл существует)
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Events.Driver {
	case EventsDriverRedis, EventsDriverLog:
	default:
		return fmt.Errorf("%w: unknown events driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	if c.Events.Driver == EventsDriverRedis && c.Events.RedisAddr == "" {
		return fmt.Errorf("%w: events.redis_addr is required for redis driver", ErrInvalidConfig)
	}

	interval := c.Scheduler.SweepIntervalSeconds
	if interval < 1 || interval > MaxSweepIntervalSeconds {
		return fmt.Errorf("%w: scheduler.sweep_interval_seconds must be in 1..%d, got %d",
			ErrInvalidConfig, MaxSweepIntervalSeconds, interval)
	}

	if _, err := c.Scheduler.Location(); err != nil {
		return fmt.Errorf("%w: scheduler.timezone: %v", ErrInvalidConfig, err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	if c.SalonService.URL == "" && len(c.Salons) == 0 {
		return fmt.Errorf("%w: either salon_service.url or [[salons]] must be configured", ErrInvalidConfig)
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "salon-booking-service"},
		Events:  EventsConfig{Driver: EventsDriverLog, Channel: "salon-booking.events"},
		Scheduler: SchedulerConfig{
			SweepIntervalSeconds: 30,
			SweepTimeoutSeconds:  10,
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 50, Burst: 100},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Events.RedisAddr = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}
