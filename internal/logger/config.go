package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config selects level, format and the attributes stamped on every record
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config, adding source locations in development
func NewConfig(level, format, serviceName, version, environment string) Config {
	c := Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
	}
	c.AddSource = c.IsDevelopment()
	return c
}

// IsDevelopment reports whether the environment is a local one
func (c Config) IsDevelopment() bool {
	_, ok := devEnvironments[strings.ToLower(c.Environment)]
	return ok
}

// LogLevel converts the string level to slog.Level
func (c Config) LogLevel() slog.Level {
	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(c.Level))]; ok {
		return level
	}
	return slog.LevelInfo
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.LogLevel(), AddSource: c.AddSource}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if c.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	}
	return h.WithAttrs([]slog.Attr{
		slog.String(AttrKeyService, orDefault(c.ServiceName, DefaultServiceName)),
		slog.String(AttrKeyVersion, orDefault(c.Version, DefaultVersion)),
		slog.String(AttrKeyEnvironment, orDefault(c.Environment, EnvironmentDev)),
	})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
