package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Postgres owns the gorm handle shared by every postgres adapter.
type Postgres struct {
	DB *gorm.DB
}

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	// SlowQuery is the threshold above which statements are logged at warn.
	SlowQuery time.Duration
	Logger    *slog.Logger
}

// Migrator is implemented by adapters that own tables.
type Migrator interface {
	AutoMigrate(ctx context.Context) error
}

func Connect(dsn string, opts Options) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(opts.Logger, opts.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	idle := opts.ConnMaxIdleTime
	if idle <= 0 {
		idle = 5 * time.Minute
	}
	sqlDB.SetConnMaxIdleTime(idle)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

// Migrate runs every migrator in order and stops at the first failure.
func (p *Postgres) Migrate(ctx context.Context, migrators ...Migrator) error {
	for i, m := range migrators {
		if m == nil {
			continue
		}
		if err := m.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("auto migrate (%d/%d): %w", i+1, len(migrators), err)
		}
	}
	return nil
}

// Ping backs the readiness probe.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.DB == nil {
		return errors.New("postgres is not connected")
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogger routes gorm's statement logging through slog with the same
// event/module/layer keys the rest of the process uses.
type gormLogger struct {
	logger    *slog.Logger
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

func newGormLogger(logger *slog.Logger, slowQuery time.Duration) gormlogger.Interface {
	if logger == nil {
		logger = slog.Default()
	}
	if slowQuery <= 0 {
		slowQuery = 200 * time.Millisecond
	}
	return &gormLogger{logger: logger, level: gormlogger.Warn, slowQuery: slowQuery}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...), l.attrs("gorm_info")...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...), l.attrs("gorm_warn")...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...), l.attrs("gorm_error")...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "query failed", append(l.attrs("db_query_failed"),
			"sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds(), "error", err.Error())...)
	case elapsed > l.slowQuery && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "slow query", append(l.attrs("db_query_slow"),
			"sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())...)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.DebugContext(ctx, "query", append(l.attrs("db_query"),
			"sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())...)
	}
}

func (l *gormLogger) attrs(event string) []any {
	return []any{
		"event", event,
		"module", "internal/platform/db",
		"layer", "platform",
	}
}
