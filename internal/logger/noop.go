package logger

// NoOpLogger discards everything.
type NoOpLogger struct{}

// Discard is a ready-to-use NoOpLogger.
var Discard Logger = NoOpLogger{}

func (NoOpLogger) Debug(msg string, fields map[string]interface{}) {}
func (NoOpLogger) Info(msg string, fields map[string]interface{}) {}
func (NoOpLogger) Warn(msg string, fields map[string]interface{}) {}
func (NoOpLogger) Error(msg string, fields map[string]interface{}) {}

func (NoOpLogger) Debugf(format string, args ...interface{}) {}
func (NoOpLogger) Infof(format string, args ...interface{}) {}
func (NoOpLogger) Warnf(format string, args ...interface{}) {}
func (NoOpLogger) Errorf(format string, args ...interface{}) {}

func (l NoOpLogger) WithField(key string, value interface{}) Logger { return l }
func (l NoOpLogger) WithFields(fields map[string]interface{}) Logger { return l }

func (NoOpLogger) Sync() error { return nil }
