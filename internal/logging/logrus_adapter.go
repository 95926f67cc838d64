package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter is the production Logger. Every derived logger shares the
// root *logrus.Logger, so level and output changes apply to all stages.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusAdapter builds a stderr logger. level is one of debug, info, warn
// or error (case-insensitive, unknown values mean info); format "json" selects
// JSON lines, anything else timestamped text.
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterWithOutput(level, format, nil)
}

// NewLogrusAdapterWithOutput is NewLogrusAdapter writing to out. A nil out
// keeps stderr.
func NewLogrusAdapterWithOutput(level, format string, out io.Writer) Logger {
	root := logrus.New()
	if out != nil {
		root.SetOutput(out)
	}
	root.SetLevel(parseLevel(root, level))
	root.SetFormatter(formatterFor(format))
	return wrap(root)
}

// NewLogrusAdapterFromLogger wraps a logger configured elsewhere, typically a
// test logger writing to a buffer.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return wrap(logger)
}

func wrap(root *logrus.Logger) *LogrusAdapter {
	return &LogrusAdapter{logger: root, entry: logrus.NewEntry(root)}
}

func parseLevel(root *logrus.Logger, level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		root.Warnf("Invalid log level '%s', using 'info'", level)
		return logrus.InfoLevel
	}
	return parsed
}

func formatterFor(format string) logrus.Formatter {
	if strings.EqualFold(format, "json") {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) { l.with(fields).Debug(msg) }

func (l *LogrusAdapter) Info(msg string, fields ...Field) { l.with(fields).Info(msg) }

func (l *LogrusAdapter) Warn(msg string, fields ...Field) { l.with(fields).Warn(msg) }

func (l *LogrusAdapter) Error(msg string, fields ...Field) { l.with(fields).Error(msg) }

func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.with(fields))
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) *LogrusAdapter {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

// with attaches per-call fields without touching the adapter's own entry.
func (l *LogrusAdapter) with(fields []Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	converted := make(logrus.Fields, len(fields))
	for _, f := range fields {
		converted[f.Key] = f.Value
	}
	return l.entry.WithFields(converted)
}
