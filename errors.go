package simpledb

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/biyonik/go-simple-db/dialect"
)

// Argument-shape errors re-exported from the dialect package so callers only
// need to import the root package. All of them match ErrInvalidArgument
// through errors.Is().
var (
	// ErrInvalidArgument is the root of every malformed-call error.
	ErrInvalidArgument = dialect.ErrInvalidArgument

	// ErrNoTable is returned when an operation is called without a table name.
	ErrNoTable = dialect.ErrNoTable

	// ErrNoColumns is returned when an insert/update receives an empty data map.
	ErrNoColumns = dialect.ErrNoColumns

	// ErrEmptyBatch is returned when InsertMany receives an empty row list.
	ErrEmptyBatch = dialect.ErrEmptyBatch

	// ErrInconsistentBatch is returned when InsertMany rows carry different
	// column sets.
	ErrInconsistentBatch = dialect.ErrInconsistentBatch
)

// ErrInvalidSource is returned when a fetch receives a source that is neither
// a table name nor a Raw query.
var ErrInvalidSource = fmt.Errorf("%w: fetch source must be a table name or a Raw query", ErrInvalidArgument)

// DBError wraps any failure reported by the underlying client, carrying the
// driver error code and message alongside the statement that produced it.
// Connection failures, syntax errors and constraint violations all surface
// through this one type; no retry is attempted.
type DBError struct {
	Op      string // logical operation, e.g. "insert", "fetch"
	Query   string // SQL text that was executed, empty for connection errors
	Code    string // driver-specific error code, empty when unknown
	Message string // driver-reported message
	Err     error  // underlying error
}

func (e *DBError) Error() string {
	msg := "simpledb: " + e.Op + ": " + e.Message
	if e.Code != "" {
		msg += " (code " + e.Code + ")"
	}
	return msg
}

func (e *DBError) Unwrap() error {
	return e.Err
}

// NewDBError creates a DBError for a failed statement, extracting the
// driver-specific code when the driver exposes one.
func NewDBError(op, query string, err error) *DBError {
	code, message := driverCode(err)
	return &DBError{
		Op:      op,
		Query:   query,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapError wraps a non-statement failure (connect, ping) in a DBError.
func WrapError(op string, err error) *DBError {
	return NewDBError(op, "", err)
}

// driverCode recognizes the error types of the supported drivers and pulls
// out their native code and message. Unknown errors keep an empty code.
func driverCode(err error) (code, message string) {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number)), myErr.Message
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Message
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strconv.Itoa(int(liteErr.ExtendedCode)), liteErr.Error()
	}

	return "", err.Error()
}
