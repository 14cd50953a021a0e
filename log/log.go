package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLevel sets the logging level from one of 'debug', 'info', 'warn' or 'error'. An empty
// level leaves the current level unchanged.
func SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}

	l, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("invalid log level '%v'", level)
	}

	logger.SetLevel(l)

	return nil
}

func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
}

// SetFile redirects the log to a rotating file.
func SetFile(file string) {
	if strings.TrimSpace(file) == "" {
		return
	}

	logger.SetOutput(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
}

func Debugf(tag string, format string, args ...any) {
	logger.WithField("tag", tag).Debugf(format, args...)
}

func Infof(tag string, format string, args ...any) {
	logger.WithField("tag", tag).Infof(format, args...)
}

func Warnf(tag string, format string, args ...any) {
	logger.WithField("tag", tag).Warnf(format, args...)
}

func Errorf(tag string, format string, args ...any) {
	logger.WithField("tag", tag).Errorf(format, args...)
}
