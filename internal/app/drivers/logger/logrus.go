package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger is the logger of the roster command line tool. Verbose
// switches on debug output, jsonOutput swaps the text formatter for JSON.
func NewLogrusLogger(out io.Writer, verbose, jsonOutput bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger
}
