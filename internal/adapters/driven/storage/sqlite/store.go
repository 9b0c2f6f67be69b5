package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Ensure Conn implements the interface.
var _ driven.Conn = (*Conn)(nil)

// Options configures Open.
type Options struct {
	// Path is the database file. Parent directories are created as needed.
	Path string

	// Debug passes every statement to Observer.Trace before it runs.
	Debug bool

	// Observer receives traces and engine errors. May be nil.
	Observer driven.Observer
}

// Conn holds the single connection to a SQLite database.
type Conn struct {
	db       *sql.DB
	path     string
	debug    bool
	observer driven.Observer

	mu     sync.Mutex
	closed bool
}

// Open opens the database at opts.Path and verifies the connection.
func Open(ctx context.Context, opts Options) (*Conn, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrConnection)
	}

	c := &Conn{
		path:     path,
		debug:    opts.Debug,
		observer: opts.Observer,
	}

	dsn := path
	if path != MemoryPath {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrConnection, c.report(err))
		}
		// WAL mode lets other processes read while we write
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrConnection, c.report(err))
	}

	// One shared connection. This also keeps an in-memory database alive
	// for the lifetime of the Conn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connecting to %s: %w", domain.ErrConnection, path, c.report(err))
	}

	c.db = db
	return c, nil
}

// Path returns the database file path.
func (c *Conn) Path() string {
	return c.path
}

// Exec runs a statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, stmt string, args ...any) (domain.ExecResult, error) {
	if err := c.checkOpen(); err != nil {
		return domain.ExecResult{}, err
	}

	c.trace(stmt)
	res, err := c.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return domain.ExecResult{}, c.report(err)
	}
	return execResult(res), nil
}

// QueryAll runs a query and reads every row into memory.
func (c *Conn) QueryAll(ctx context.Context, stmt string, args ...any) ([]domain.Row, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	c.trace(stmt)
	rows, err := c.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, c.report(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, c.report(fmt.Errorf("reading columns: %w", err))
	}

	result := []domain.Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, c.report(fmt.Errorf("scanning row: %w", err))
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, c.report(fmt.Errorf("iterating rows: %w", err))
	}

	return result, nil
}

// Prepare readies stmt for later binding and execution. The driver may
// defer compilation, so statement errors can surface from Run instead.
func (c *Conn) Prepare(ctx context.Context, stmt string) (driven.Statement, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	prepared, err := c.db.PrepareContext(ctx, stmt)
	if err != nil {
		return nil, c.report(err)
	}
	return &statement{conn: c, stmt: prepared, query: stmt}, nil
}

// Close closes the database connection. Subsequent calls are no-ops.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("%w: closing database: %w", domain.ErrConnection, c.report(err))
	}
	return nil
}

func (c *Conn) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrConnectionClosed
	}
	return nil
}

func (c *Conn) trace(stmt string) {
	if c.debug && c.observer != nil {
		c.observer.Trace(stmt)
	}
}

// report passes err to the observer and returns it unchanged.
func (c *Conn) report(err error) error {
	if c.observer != nil {
		c.observer.Error(err)
	}
	return err
}

// statement implements driven.Statement.
type statement struct {
	conn  *Conn
	stmt  *sql.Stmt
	query string
	args  []any
}

var _ driven.Statement = (*statement)(nil)

// Bind replaces the parameters used by the next Run.
func (s *statement) Bind(args ...any) error {
	if err := s.conn.checkOpen(); err != nil {
		return err
	}
	s.args = append(s.args[:0], args...)
	return nil
}

// Run executes the statement with the bound parameters.
func (s *statement) Run(ctx context.Context) (domain.ExecResult, error) {
	if err := s.conn.checkOpen(); err != nil {
		return domain.ExecResult{}, err
	}

	s.conn.trace(s.query)
	res, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return domain.ExecResult{}, s.conn.report(err)
	}
	return execResult(res), nil
}

// Close releases the prepared statement.
func (s *statement) Close() error {
	return s.stmt.Close()
}

func execResult(res sql.Result) domain.ExecResult {
	// SQLite supports both; errors are not expected.
	id, _ := res.LastInsertId()
	n, _ := res.RowsAffected()
	return domain.ExecResult{LastInsertID: id, RowsAffected: n}
}
