package logger

import (
	"log/slog"
	"os"
)

type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger builds a Logger backed by log/slog with the given
// configuration. A nil config means DefaultConfig.
func NewSlogLogger(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatText:
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	return &slogLogger{logger: slog.New(handler)}, nil
}

func New() (Logger, error) {
	return NewSlogLogger(DefaultConfig())
}

func NewDevelopment() (Logger, error) {
	return NewSlogLogger(DevelopmentConfig())
}

func (s *slogLogger) Debug(msg string, fields ...Field) {
	s.logger.Debug(msg, slogAttrs(fields)...)
}

func (s *slogLogger) Info(msg string, fields ...Field) {
	s.logger.Info(msg, slogAttrs(fields)...)
}

func (s *slogLogger) Warn(msg string, fields ...Field) {
	s.logger.Warn(msg, slogAttrs(fields)...)
}

func (s *slogLogger) Error(msg string, fields ...Field) {
	s.logger.Error(msg, slogAttrs(fields)...)
}

func (s *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{logger: s.logger.With(slogAttrs(fields)...)}
}

func (s *slogLogger) Sync() error {
	return nil
}

func slogAttrs(fields []Field) []any {
	attrs := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		attrs = append(attrs, f.Key, f.Value)
	}
	return attrs
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
