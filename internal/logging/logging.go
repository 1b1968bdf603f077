package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

func GetLogger() *logrus.Logger {
	return logg
}

// LogError records a backend failure with enough context to trace the call
// site. Failures are logged and surfaced to the caller, never retried.
func LogError(module, funcName string, err error) {
	logg.WithFields(logrus.Fields{
		"module":   module,
		"funcName": funcName,
	}).Error(err.Error())
}
