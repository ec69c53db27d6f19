package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hbnb/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger forwards GORM output to slog. Every statement is logged at
// debug level, slow ones at warn and failed ones at error. A missing row is
// how LoadAll and Remove detect absence, so it is not logged as a failure.
type gormLogger struct {
	logger *slog.Logger
	mode   logger.LogLevel
}

func newGormLogger(l *slog.Logger) logger.Interface {
	if l == nil {
		l = slog.Default()
	}

	return &gormLogger{logger: l.With(slog.String("component", "gorm")), mode: logger.Info}
}

func (g *gormLogger) LogMode(mode logger.LogLevel) logger.Interface {
	cloned := *g
	cloned.mode = mode

	return &cloned
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...any) {
	g.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	g.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...any) {
	g.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (g *gormLogger) printf(ctx context.Context, need logger.LogLevel, level slog.Level, msg string, args ...any) {
	if g.mode < need {
		return
	}
	g.logger.Log(ctx, level, fmt.Sprintf(msg, args...))
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.mode == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level := slog.LevelDebug
	msg := "GORM query"

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.mode >= logger.Error:
		level, msg = slog.LevelError, "GORM query failed"
	case elapsed > slowQueryThreshold && g.mode >= logger.Warn:
		level, msg = slog.LevelWarn, "GORM slow query"
	}

	if !g.logger.Enabled(ctx, level) {
		return
	}

	query, rows := fc()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", query),
	}
	if level == slog.LevelError {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	g.logger.LogAttrs(ctx, level, msg, attrs...)
}
