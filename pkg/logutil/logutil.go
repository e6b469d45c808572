// Package logutil provides the logging facility shared by all packages.
//
// Packages obtain a logger once, at package init:
//
//	var logger = logutil.GetLogger("[jobctl] ")
//
// All loggers discard their output until SetOutput is called, so logging is
// free unless debugging is switched on.
package logutil

import (
	"io"
	"log"
)

var (
	out     io.Writer = io.Discard
	loggers []*log.Logger
)

// GetLogger returns a logger with the given prefix, writing to the current
// log output.
func GetLogger(prefix string) *log.Logger {
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained from GetLogger,
// past and future, to w.
func SetOutput(w io.Writer) {
	out = w
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
