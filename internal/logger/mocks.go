package logger

import "github.com/stretchr/testify/mock"

// MockLogger is a testify mock of Logger. The formatted variants and the
// With* helpers are not recorded.
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

// Debug mocks the Debug method
func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Info mocks the Info method
func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Warn mocks the Warn method
func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Error mocks the Error method
func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Infof(format string, args ...interface{}) {}
func (m *MockLogger) Warnf(format string, args ...interface{}) {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}

func (m *MockLogger) WithField(key string, value interface{}) Logger { return m }
func (m *MockLogger) WithFields(fields map[string]interface{}) Logger { return m }

func (m *MockLogger) Sync() error { return nil }
