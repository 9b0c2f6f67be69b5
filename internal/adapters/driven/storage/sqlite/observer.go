package sqlite

import (
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/logger"
)

// LogObserver writes statement traces and engine errors to the logger.
type LogObserver struct{}

var _ driven.Observer = LogObserver{}

// Trace logs an executed statement. Only visible in verbose mode.
func (LogObserver) Trace(stmt string) {
	logger.Debug("SQL Executed: %s", stmt)
}

// Error logs an engine error.
func (LogObserver) Error(err error) {
	logger.Error("Database error: %v", err)
}
