package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger. It is usable before InitLogger
// is called so packages and tests never see a nil logger.
var Log = logrus.New()

func InitLogger(level string) {
	Log = logrus.New()

	// Output to stdout instead of the default stderr
	Log.Out = os.Stdout

	// Set JSON formatter for structured logging
	Log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
