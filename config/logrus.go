package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetFormatter(&logrus.JSONFormatter{})
		logrusInstance.SetLevel(getLogLevel())
	}
	return logrusInstance
}

func getLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
