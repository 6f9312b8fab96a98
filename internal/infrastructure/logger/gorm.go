package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// GormLogger routes GORM's query log through zap so SQL tracing shares the
// same sink and request id tagging as the rest of the application.
type GormLogger struct {
	zl            *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger wraps a zap logger as a gormlogger.Interface at the given level.
func NewGormLogger(zl *zap.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{
		zl:            zl.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowQueryThreshold,
	}
}

// LogMode returns a copy of the logger with the level replaced.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(_ context.Context, format string, args ...any) {
	if g.level >= gormlogger.Info {
		g.zl.Sugar().Infof(format, args...)
	}
}

func (g *GormLogger) Warn(_ context.Context, format string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.zl.Sugar().Warnf(format, args...)
	}
}

func (g *GormLogger) Error(_ context.Context, format string, args ...any) {
	if g.level >= gormlogger.Error {
		g.zl.Sugar().Errorf(format, args...)
	}
}

// Trace logs each executed statement with its latency and row count. Record
// not found is suppressed since callers treat it as a normal outcome.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", time.Since(begin)),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound):
		if g.level >= gormlogger.Error {
			g.zl.Error("query failed", append(fields, zap.Error(err))...)
		}
	case time.Since(begin) > g.slowThreshold:
		if g.level >= gormlogger.Warn {
			g.zl.Warn("slow query", append(fields, zap.Duration("threshold", g.slowThreshold))...)
		}
	default:
		if g.level >= gormlogger.Info {
			g.zl.Debug("query", fields...)
		}
	}
}

// MapGormLogLevel translates the application log level string into GORM's
// level. Unknown values log warnings and errors only.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Warn
	}
}
