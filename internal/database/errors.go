package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Kind classifies a data access failure.
type Kind int

const (
	KindDataAccess Kind = iota // unanticipated store failure
	KindDuplicate              // uniqueness violated or pre-check found an existing row
	KindNotFound               // a required row was absent
	KindUnexpected             // non-store failure raised inside a unit of work
)

func (k Kind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate entry"
	case KindNotFound:
		return "entry not found"
	case KindUnexpected:
		return "unexpected error"
	default:
		return "data access error"
	}
}

// Sentinels for errors.Is. Every *Error matches ErrDataAccess.
var (
	ErrDataAccess     = errors.New("data access error")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrUnexpected     = errors.New("unexpected error")
)

// Error is the only error type that leaves the persistence layer.
type Error struct {
	Kind    Kind
	Message string
	Value   string // conflicting value, set for KindDuplicate
	Err     error  // underlying cause, may be nil for pre-check failures
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrDataAccess:
		return true
	case ErrDuplicateEntry:
		return e.Kind == KindDuplicate
	case ErrEntryNotFound:
		return e.Kind == KindNotFound
	case ErrUnexpected:
		return e.Kind == KindUnexpected
	}
	return false
}

func DataAccess(message string, err error) *Error {
	return &Error{Kind: KindDataAccess, Message: message, Err: err}
}

func Duplicate(value, message string, err error) *Error {
	return &Error{Kind: KindDuplicate, Message: message, Value: value, Err: err}
}

func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected error during data access", Err: err}
}

// AsError extracts the taxonomy error from err's chain.
func AsError(err error) (*Error, bool) {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr, true
	}
	return nil, false
}

// IsDuplicateKey reports whether err is a uniqueness or primary key violation.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Translate converts a raw store error into the taxonomy. message describes
// the failed operation. Errors already in the taxonomy pass through unchanged.
func Translate(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(message, err)
	case IsDuplicateKey(err):
		return Duplicate("", message, err)
	default:
		return DataAccess(message, err)
	}
}

var storeSentinels = []error{
	gorm.ErrRecordNotFound,
	gorm.ErrInvalidTransaction,
	gorm.ErrNotImplemented,
	gorm.ErrMissingWhereClause,
	gorm.ErrUnsupportedRelation,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrModelValueRequired,
	gorm.ErrInvalidData,
	gorm.ErrUnsupportedDriver,
	gorm.ErrRegistered,
	gorm.ErrInvalidField,
	gorm.ErrEmptySlice,
	gorm.ErrDryRunModeUnsupported,
	gorm.ErrInvalidDB,
	gorm.ErrInvalidValue,
	gorm.ErrInvalidValueOfLength,
	gorm.ErrPreloadNotAllowed,
	gorm.ErrDuplicatedKey,
	sql.ErrNoRows,
	sql.ErrTxDone,
	sql.ErrConnDone,
	driver.ErrBadConn,
	context.Canceled,
	context.DeadlineExceeded,
}

// IsStoreError reports whether err originated in the store or its driver.
func IsStoreError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return true
	}
	for _, sentinel := range storeSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// classify maps a failure that escaped a unit of work onto the taxonomy.
func classify(err error) error {
	if _, ok := AsError(err); ok {
		return err
	}
	if IsStoreError(err) {
		return DataAccess("data access failed", err)
	}
	return Unexpected(err)
}

func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
