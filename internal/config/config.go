package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrLoad возвращается при ошибке чтения файла конфигурации
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается при некорректных значениях конфигурации
	ErrInvalid = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Availability AvailabilityConfig `toml:"availability"`
	Lock         LockConfig         `toml:"lock"`
	CORS         CORSConfig         `toml:"cors"`
	RateLimit    RateLimitConfig    `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AvailabilityConfig значения по умолчанию для расчета свободных слотов
type AvailabilityConfig struct {
	DefaultDuration    int              `toml:"default_duration"`
	DefaultBuffer      int              `toml:"default_buffer"`
	DefaultGranularity int              `toml:"default_granularity"`
	WindowStart        types.TimeString `toml:"window_start"`
	WindowEnd          types.TimeString `toml:"window_end"`
}

// LockConfig блокировка записи на день. Пустой RedisAddr - блокировка внутри процесса
type LockConfig struct {
	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB"`
	TTLSeconds    int    `toml:"ttl_seconds"`
	WaitSeconds   int    `toml:"wait_seconds"`
}

// TTL время жизни блокировки
func (l LockConfig) TTL() time.Duration {
	return time.Duration(l.TTLSeconds) * time.Second
}

// Wait максимальное время ожидания блокировки
func (l LockConfig) Wait() time.Duration {
	return time.Duration(l.WaitSeconds) * time.Second
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
}

// RateLimitConfig ограничение запросов с одного IP. 0 - без ограничений
type RateLimitConfig struct {
	RequestsPerSecond int `toml:"requests_per_second" env:"RATE_LIMIT_RPS"`
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
	}

	// переменные окружения перекрывают значения из файла; не заданные переменные не трогают поля
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: read env: %v", ErrLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalid)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalid)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("%w: database pool sizes must not be negative", ErrInvalid)
	}

	a := c.Availability
	if a.DefaultDuration < 0 || a.DefaultBuffer < 0 {
		return fmt.Errorf("%w: availability defaults must not be negative", ErrInvalid)
	}
	if a.DefaultGranularity <= 0 {
		return fmt.Errorf("%w: availability.default_granularity must be positive", ErrInvalid)
	}
	if err := a.WindowStart.Validate(); err != nil {
		return fmt.Errorf("%w: availability.window_start: %v", ErrInvalid, err)
	}
	if err := a.WindowEnd.Validate(); err != nil {
		return fmt.Errorf("%w: availability.window_end: %v", ErrInvalid, err)
	}
	if !a.WindowStart.IsBefore(a.WindowEnd) {
		return fmt.Errorf("%w: availability.window_start must be before window_end", ErrInvalid)
	}

	if c.Lock.TTLSeconds <= 0 {
		return fmt.Errorf("%w: lock.ttl_seconds must be positive", ErrInvalid)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_second must not be negative", ErrInvalid)
	}

	return nil
}

func defaults() *Config {
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
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-schedulingservice",
		},
		Availability: AvailabilityConfig{
			DefaultDuration:    30,
			DefaultBuffer:      15,
			DefaultGranularity: 15,
			WindowStart:        "08:00",
			WindowEnd:          "18:00",
		},
		Lock: LockConfig{TTLSeconds: 10, WaitSeconds: 3},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		},
	}
}
