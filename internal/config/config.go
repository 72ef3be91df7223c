package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Tracing    TracingConfig    `toml:"tracing"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Reminders  RemindersConfig  `toml:"reminders"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	TxMaxAttempts   int    `toml:"tx_max_attempts"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Enabled         bool     `toml:"enabled"`
	Brokers         []string `toml:"brokers"`
	GroupID         string   `toml:"group_id"`
	PublishInterval int      `toml:"publish_interval_ms"`
	PublishBatch    int      `toml:"publish_batch"`
}

type RemindersConfig struct {
	Enabled        bool   `toml:"enabled"`
	Queue          string `toml:"queue"`
	OffsetsMinutes []int  `toml:"offsets_minutes"`
}

// SchedulingConfig параметры вычисления слотов
type SchedulingConfig struct {
	DefaultDurationMinutes int `toml:"default_duration_minutes"`
	DefaultDays            int `toml:"default_days"`
	AllServicesDays        int `toml:"all_services_days"`
	MaxDays                int `toml:"max_days"`
	SlotCacheTTLSeconds    int `toml:"slot_cache_ttl_seconds"`
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию.
// Пароль БД можно переопределить переменной окружения DB_PASSWORD.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if pwd := os.Getenv("DB_PASSWORD"); pwd != "" {
		cfg.Database.Password = pwd
	}
	if pwd := os.Getenv("REDIS_PASSWORD"); pwd != "" {
		cfg.Redis.Password = pwd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   3,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-schedulingservice",
		},
		Tracing: TracingConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			GroupID:         "smc-schedulingservice",
			PublishInterval: 1000,
			PublishBatch:    100,
		},
		Reminders: RemindersConfig{
			Queue:          "reminders",
			OffsetsMinutes: []int{24 * 60, 60},
		},
		Scheduling: SchedulingConfig{
			DefaultDurationMinutes: 60,
			DefaultDays:            7,
			AllServicesDays:        3,
			MaxDays:                31,
			SlotCacheTTLSeconds:    60,
		},
	}
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	var errs []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		errs = append(errs, "database.host and database.dbname are required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, "kafka.brokers is required when kafka is enabled")
	}
	if c.Reminders.Enabled && !c.Redis.Enabled {
		errs = append(errs, "reminders require redis to be enabled")
	}

	s := c.Scheduling
	if s.DefaultDurationMinutes <= 0 {
		errs = append(errs, "scheduling.default_duration_minutes must be positive")
	}
	if s.MaxDays <= 0 || s.DefaultDays <= 0 || s.DefaultDays > s.MaxDays {
		errs = append(errs, "scheduling.default_days must be in [1, max_days]")
	}
	if s.AllServicesDays <= 0 || s.AllServicesDays > s.MaxDays {
		errs = append(errs, "scheduling.all_services_days must be in [1, max_days]")
	}

	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
