package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Store Errors.

	// ErrConnection indicates the store connection could not be opened or closed.
	ErrConnection = errors.New("connection error")

	// ErrConnectionClosed indicates an operation was attempted after Close.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrSchemaExecution indicates a DDL or seed statement failed.
	// Statements applied before the failure remain applied.
	ErrSchemaExecution = errors.New("schema execution failed")

	// ErrQuery indicates a catalog or row read failed.
	ErrQuery = errors.New("query failed")

	// ErrExecution indicates an insert or prepared statement failed,
	// typically because the target table or column does not exist.
	ErrExecution = errors.New("execution failed")

	// ErrSerialization indicates a value could not be encoded as JSON.
	ErrSerialization = errors.New("serialization failed")
)
