package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New собирает logrus-логгер по настройкам окружения.
// format "json" или "text"; пустой формат выбирается по окружению.
func New(level, format string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	// логгер нужен раньше config.Validate, который и отклоняет неверный уровень
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "" {
		format = "text"
		if production {
			format = "json"
		}
	}

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// Discard возвращает логгер, который ничего не пишет (для тестов)
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
