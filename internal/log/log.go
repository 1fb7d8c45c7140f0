// Package log wraps logrus behind a small interface so the rest of the
// binding never imports the logging library directly.
package log

// Logger is the logging surface used across the binding.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	// Fatal logs and aborts the process. Reserved for programming-contract
	// violations (double subscribe, foreign slot release); runtime
	// conditions never take this path.
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
}

var logger Logger

func init() {
	logger = newLogrusLogger()
}

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	return logger
}
