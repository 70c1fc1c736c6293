package logger

import "log/slog"

// levelNames maps LOG_LEVEL values to slog levels. Unknown names log at info.
var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Output formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "notion-pet"
	DefaultVersion     = "dev"
	EnvironmentDev     = "dev"
)

var devEnvironments = map[string]struct{}{
	"dev":         {},
	"development": {},
	"local":       {},
}

// Attribute keys stamped on records
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)
