package toast

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/soar/pkg/logger"
)

// Logger records every toast. Errors are logged at warn level.
type Logger struct {
	log *slog.Logger
}

func NewLogger(l *slog.Logger) *Logger {
	return &Logger{log: l}
}

func (l *Logger) Deliver(ctx context.Context, t Toast) error {
	level := slog.LevelInfo
	if t.Type == TypeError || t.Type == TypeWarning {
		level = slog.LevelWarn
	}
	l.log.LogAttrs(ctx, level, "toast",
		logger.Component("toast"),
		slog.String("toast_type", string(t.Type)),
		slog.String("toast_message", t.Message),
	)
	return nil
}
