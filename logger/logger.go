// Package logger provides the coloured, prefixed loggers used across the service.
//
//	appLogger, _ := logger.New("APP", config.ColorGreen, os.Stdout)
//	appLogger.Info("Router initialized")
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/sirupsen/logrus"
)

var ErrEmptyPrefix = errors.New("logger prefix must not be empty")

// Logger writes levelled messages tagged with a coloured component prefix.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger for the component named prefix, writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// SetLevel changes the minimum level written. Accepts logrus level names.
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

// With returns a Logger that adds key=value to every message.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.entry.Info(msg) }

// Warning logs a warning.
func (l *Logger) Warning(msg string) { l.entry.Warn(msg) }

// Error logs an error.
func (l *Logger) Error(msg string) { l.entry.Error(msg) }

// prefixFormatter renders "2006/01/02 15:04:05 [PREFIX] [LEVEL] message k=v".
type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	levelColor := config.LogInfoColor
	switch e.Level {
	case logrus.WarnLevel:
		levelColor = config.LogWarnColor
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = config.LogErrorColor
	}

	fmt.Fprintf(&b, "%s %s[%s]%s %s[%s]%s %s",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, f.prefix, config.LogColorReset,
		levelColor, levelName(e.Level), config.LogColorReset,
		e.Message,
	)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(l logrus.Level) string {
	return strings.ToUpper(l.String())
}
