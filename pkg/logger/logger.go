package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const appName = "roadside_dispatch"

// New создаёт JSON-логгер сервиса. Каждая запись помечается именем приложения и экземпляра,
// чтобы логи нескольких реплик диспетчера можно было разделить.
func New(logLevel string) *logrus.Logger {
	return NewWithOutput(logLevel, os.Stdout)
}

// NewWithOutput - то же, что New, но с произвольным приёмником
func NewWithOutput(logLevel string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "message",
		},
	})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	instance, _ := os.Hostname()
	log.AddHook(&staticFieldsHook{fields: logrus.Fields{
		"app":      appName,
		"instance": instance,
	}})
	return log
}

// staticFieldsHook дописывает постоянные поля, не перетирая заданные вызовом
type staticFieldsHook struct {
	fields logrus.Fields
}

func (h *staticFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *staticFieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
