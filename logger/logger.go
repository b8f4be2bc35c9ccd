package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON logrus logger that writes to stdout and, when logDir is
// set, to a rotating app.log inside it. The returned closer flushes the file.
func New(logDir, level string) (*logrus.Logger, io.Closer, error) {
	return NewWithConsole(os.Stdout, logDir, level)
}

// NewWithConsole is New with console output sent to w. CLI commands pass
// stderr so stdout carries only their result.
func NewWithConsole(w io.Writer, logDir, level string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if logDir == "" {
		log.SetOutput(w)
		return log, io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	log.SetOutput(io.MultiWriter(w, logFile))
	return log, logFile, nil
}
