package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	StoreBackend string
	PostgresDSN  string
	KafkaBrokers []string

	LogLevel  string
	LogFormat string

	AutoMigrate     bool
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	ShutdownTimeout time.Duration

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// SetDefaults registers default values on v. Keys mirror the environment
// variable names in lower case with underscores.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "crudhub")
	v.SetDefault("http_port", "8080")
	v.SetDefault("store_backend", StoreBackendMemory)
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("auto_migrate", false)
	v.SetDefault("db_max_open_conns", 20)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("outbox_poll_interval", "2s")
	v.SetDefault("outbox_batch_size", 100)
}

// Load reads configuration from the environment only.
func Load() (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance
// (flags, config file and environment bound by the caller).
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServiceName:  strings.TrimSpace(v.GetString("service_name")),
		HTTPPort:     strings.TrimSpace(v.GetString("http_port")),
		StoreBackend: strings.ToLower(strings.TrimSpace(v.GetString("store_backend"))),
		PostgresDSN:  strings.TrimSpace(v.GetString("postgres_dsn")),
		KafkaBrokers: splitList(v.GetString("kafka_brokers")),

		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),

		AutoMigrate:     v.GetBool("auto_migrate"),
		DBMaxOpenConns:  v.GetInt("db_max_open_conns"),
		DBMaxIdleConns:  v.GetInt("db_max_idle_conns"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),

		OutboxPollInterval: v.GetDuration("outbox_poll_interval"),
		OutboxBatchSize:    v.GetInt("outbox_batch_size"),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "crudhub"
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if len(cfg.KafkaBrokers) == 0 {
		cfg.KafkaBrokers = []string{"localhost:9092"}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.OutboxPollInterval <= 0 {
		cfg.OutboxPollInterval = 2 * time.Second
	}
	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = 100
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("config: POSTGRES_DSN is required when STORE_BACKEND=%s", StoreBackendPostgres)
		}
	default:
		return fmt.Errorf("config: unsupported STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("config: unsupported LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
