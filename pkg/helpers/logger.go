package helpers

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the process logger: human-readable text at debug level in
// development, JSON at info level everywhere else. Every entry carries the
// app and env fields.
func NewLogger(appName, env string) *logrus.Logger {
	return newLogger(os.Stdout, appName, env)
}

func newLogger(out io.Writer, appName, env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.AddHook(staticFields{"app": appName, "env": env})

	if env == "development" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return l
	}
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// staticFields stamps fixed fields on every entry without overriding caller fields.
type staticFields logrus.Fields

func (staticFields) Levels() []logrus.Level { return logrus.AllLevels }

func (f staticFields) Fire(e *logrus.Entry) error {
	for k, v := range f {
		if _, set := e.Data[k]; !set {
			e.Data[k] = v
		}
	}
	return nil
}

// LogError logs msg at error level with err and fields. A nil logger is a no-op.
func LogError(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	entry := logger.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}
