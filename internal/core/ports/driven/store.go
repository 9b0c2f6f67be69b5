package driven

import (
	"context"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

// Conn is the narrow interface the core uses to talk to the store.
// Implementations own a single connection; each call is independent and
// no call wraps another in a transaction.
type Conn interface {
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, stmt string, args ...any) (domain.ExecResult, error)

	// QueryAll runs a query and reads its full result set.
	QueryAll(ctx context.Context, stmt string, args ...any) ([]domain.Row, error)

	// Prepare readies a statement for later binding and execution.
	// Errors in the statement may be reported here or by the first Run.
	Prepare(ctx context.Context, stmt string) (Statement, error)

	// Close releases the connection. Calling Close more than once is a no-op.
	Close() error
}

// Statement is a prepared statement with bound parameters.
type Statement interface {
	// Bind replaces the parameters used by the next Run.
	Bind(args ...any) error

	// Run executes the statement with the bound parameters.
	Run(ctx context.Context) (domain.ExecResult, error)

	// Close releases the prepared statement.
	Close() error
}

// Observer receives store activity.
type Observer interface {
	// Trace is called with every statement before it executes.
	// Only invoked when tracing is enabled.
	Trace(stmt string)

	// Error is called with every error raised by the engine, in addition
	// to the error being returned to the caller.
	Error(err error)
}
