package config

import (
	"io"
	"log/slog"

	"git.home.luguber.info/inful/wikilink/internal/foundation/normalization"
)

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var (
	logLevels  = normalization.NewEnum("log level", LogLevelInfo, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
	logFormats = normalization.NewEnum("log format", LogFormatText, LogFormatJSON, LogFormatText)
)

func NormalizeLogLevel(raw string) LogLevel   { return logLevels.Normalize(raw) }
func NormalizeLogFormat(raw string) LogFormat { return logFormats.Normalize(raw) }

// SlogLevel maps the level onto slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w.
func NewLogger(w io.Writer, level LogLevel, format LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
