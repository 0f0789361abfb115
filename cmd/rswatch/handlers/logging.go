package handlers

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// newLogger builds the zap-backed logger. Verbose switches to the
// development encoder and enables V(1) messages. A quiet logger without a
// log file discards everything so it cannot draw over the dashboard.
func newLogger(verbose bool, logFile string, quiet bool) (logr.Logger, func(), error) {
	if quiet && logFile == "" {
		return logr.Discard(), func() {}, nil
	}

	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if logFile != "" {
		zc.OutputPaths = []string{logFile}
		zc.ErrorOutputPaths = []string{logFile}
	}

	zl, err := zc.Build()
	if err != nil {
		return logr.Logger{}, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}
