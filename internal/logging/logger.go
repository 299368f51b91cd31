// Package logging wraps logrus so the rest of the app shares one logger
// shape.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/11bDev/yall-sub001/internal/config"
)

// Logger is the logger handle passed through constructors.
type Logger = *logrus.Logger

// Fields carries structured logging fields.
type Fields = logrus.Fields

// New returns a logger configured from the environment.
func New() Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewNop returns a logger that discards everything; handy in tests.
func NewNop() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
