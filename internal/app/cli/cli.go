// Package cli holds the flag, config file and logger plumbing shared by the
// api and worker entrypoints.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crudhub/internal/platform/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags to viper keys.
var flagKeys = map[string]string{
	"service-name":         "service_name",
	"http-port":            "http_port",
	"store-backend":        "store_backend",
	"postgres-dsn":         "postgres_dsn",
	"kafka-brokers":        "kafka_brokers",
	"log-level":            "log_level",
	"log-format":           "log_format",
	"auto-migrate":         "auto_migrate",
	"db-max-open-conns":    "db_max_open_conns",
	"db-max-idle-conns":    "db_max_idle_conns",
	"shutdown-timeout":     "shutdown_timeout",
	"outbox-poll-interval": "outbox_poll_interval",
	"outbox-batch-size":    "outbox_batch_size",
}

// RegisterFlags adds the process flags to root as persistent flags so every
// subcommand shares them.
func RegisterFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "path to a YAML config file")
	flags.String("service-name", "crudhub", "service name attached to every log line")
	flags.String("http-port", "8080", "HTTP listen port")
	flags.String("store-backend", config.StoreBackendMemory, "storage backend (memory|postgres)")
	flags.String("postgres-dsn", "", "postgres connection string")
	flags.String("kafka-brokers", "localhost:9092", "comma separated broker list")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")
	flags.String("log-format", "json", "log format (json|text)")
	flags.Bool("auto-migrate", false, "run schema migrations on startup")
	flags.Int("db-max-open-conns", 20, "maximum open database connections")
	flags.Int("db-max-idle-conns", 5, "maximum idle database connections")
	flags.Duration("shutdown-timeout", 0, "graceful shutdown timeout")
	flags.Duration("outbox-poll-interval", 0, "outbox relay poll interval")
	flags.Int("outbox-batch-size", 100, "outbox rows relayed per cycle")
}

// Load resolves configuration with precedence flags > environment > config
// file > defaults.
func Load(cmd *cobra.Command) (config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	flags := cmd.Flags()
	for flag, key := range flagKeys {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return config.Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := strings.TrimSpace(stringFlag(flags, "config")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
	}
	return config.FromViper(v)
}

// NewLogger builds the process logger from the configured level and format.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func stringFlag(flags *pflag.FlagSet, name string) string {
	value, err := flags.GetString(name)
	if err != nil {
		return ""
	}
	return value
}
