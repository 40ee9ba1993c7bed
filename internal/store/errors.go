package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	msqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// Kind classifies store failures so callers can react without knowing
// anything about the storage engine.
type Kind int

const (
	// KindOther is an engine error that matched no recognized kind.
	KindOther Kind = iota
	// KindStorageUnavailable means the database could not be created,
	// opened, read or written.
	KindStorageUnavailable
	// KindDuplicateName means an insert collided with an existing name.
	KindDuplicateName
	// KindNotFound means no bookmark has the requested name.
	KindNotFound
	// KindInvalid means the input was rejected before reaching storage.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindStorageUnavailable:
		return "storage unavailable"
	case KindDuplicateName:
		return "duplicate name"
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid argument"
	default:
		return "other"
	}
}

// Sentinels for errors.Is checks.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicateName      = errors.New("name already used")
	ErrNotFound           = errors.New("bookmark not found")
	ErrInvalid            = errors.New("invalid bookmark")
)

// Error is returned by every Store operation that fails.
type Error struct {
	Op   string // open, insert, lookup, list, remove
	Name string // bookmark name, if the operation had one
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel belonging to the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrStorageUnavailable:
		return e.Kind == KindStorageUnavailable
	case ErrDuplicateName:
		return e.Kind == KindDuplicateName
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalid:
		return e.Kind == KindInvalid
	}
	return false
}

// KindOf reports the kind of err. Errors not produced by this package are
// KindOther.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindOther
}

// classify wraps an engine error into an *Error with the matching kind.
func classify(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Name: name, Kind: kindFromEngine(err), Err: err}
}

// unavailable wraps err as KindStorageUnavailable regardless of its code.
func unavailable(op string, err error) error {
	return &Error{Op: op, Kind: KindStorageUnavailable, Err: err}
}

func kindFromEngine(err error) Kind {
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		switch cgoErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return KindDuplicateName
		}
		switch cgoErr.Code {
		case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrCorrupt,
			sqlite3.ErrIoErr, sqlite3.ErrPerm, sqlite3.ErrReadonly,
			sqlite3.ErrFull, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrAuth:
			return KindStorageUnavailable
		}
		return KindOther
	}

	var pureErr *msqlite.Error
	if errors.As(err, &pureErr) {
		code := pureErr.Code()
		switch code {
		case sqlitelib.SQLITE_CONSTRAINT_UNIQUE, sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return KindDuplicateName
		}
		// Extended codes carry the primary code in the low byte.
		switch code & 0xff {
		case sqlitelib.SQLITE_CANTOPEN, sqlitelib.SQLITE_NOTADB, sqlitelib.SQLITE_CORRUPT,
			sqlitelib.SQLITE_IOERR, sqlitelib.SQLITE_PERM, sqlitelib.SQLITE_READONLY,
			sqlitelib.SQLITE_FULL, sqlitelib.SQLITE_BUSY, sqlitelib.SQLITE_LOCKED, sqlitelib.SQLITE_AUTH:
			return KindStorageUnavailable
		}
	}

	return KindOther
}
