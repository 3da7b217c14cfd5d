package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusLogger emits one JSON object per message through logrus.
// Verbose messages are logged at debug level.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger creates a JSON logger writing to out. Every entry carries
// the given fields, typically the component name and a run ID.
func NewLogrusLogger(out io.Writer, verbose bool, fields logrus.Fields) *LogrusLogger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return &LogrusLogger{entry: logrus.NewEntry(logger).WithFields(fields)}
}

// WithField returns a logger that adds key to every entry.
func (l *LogrusLogger) WithField(key string, value interface{}) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

func (l *LogrusLogger) Verbose(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *LogrusLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *LogrusLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}
