package common

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogOption configures the logger handed to the walker, the builder and the gateway.
type LogOption struct {
	LogLevel logrus.Level
	Logger   *logrus.Logger
}

// NewLogger returns the logger described by the first option. Without options the
// returned logger discards everything, so library callers stay silent by default.
func NewLogger(opt ...LogOption) *logrus.Logger {
	logger := logrus.New()
	if len(opt) == 0 {
		logger.Out = io.Discard
		return logger
	}
	if opt[0].Logger != nil {
		return opt[0].Logger
	}
	logger.SetLevel(opt[0].LogLevel)
	return logger
}

// StandardLogOption forwards to the global logrus logger configured by the CLI.
func StandardLogOption() LogOption {
	return LogOption{Logger: logrus.StandardLogger()}
}
