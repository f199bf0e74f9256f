package logger

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the global, configured logrus instance.
var Log *logrus.Logger

// InitLogger sets up JSON logging to stdout and a log file.
func InitLogger() {
	Log = logrus.New()

	// Structured JSON so the output can go straight into ELK/Loki.
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	file, err := os.OpenFile("clipstream.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("cannot open log file: %v", err)
	}

	mw := io.MultiWriter(os.Stdout, file)
	Log.SetOutput(mw)

	Log.SetLevel(logrus.InfoLevel)
}
