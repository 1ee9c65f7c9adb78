package logger

// LogLevel represents logging levels as strings
type LogLevel string

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production
	DebugLevel LogLevel = "debug"

	// InfoLevel is the default logging priority
	InfoLevel LogLevel = "info"

	// WarnLevel logs are more important than Info, but don't need individual human review
	WarnLevel LogLevel = "warn"

	// ErrorLevel logs are high-priority
	ErrorLevel LogLevel = "error"
)

const (
	// DefaultLogLevel is used when no level is configured
	DefaultLogLevel = InfoLevel

	// DefaultMaxSizeMB is the size a log file may reach before it is rotated
	DefaultMaxSizeMB = 100

	// DefaultMaxBackups is the number of rotated files kept
	DefaultMaxBackups = 3

	// DefaultMaxAgeDays is how long rotated files are kept
	DefaultMaxAgeDays = 15
)

// Logger defines the logging methods used across nexusctl.
// Fields are plain maps so callers never import zap directly.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger

	Sync() error
}

// ParseLevel converts s to a LogLevel, reporting whether it is known.
func ParseLevel(s string) (LogLevel, bool) {
	switch l := LogLevel(s); l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return l, true
	default:
		return DefaultLogLevel, false
	}
}
