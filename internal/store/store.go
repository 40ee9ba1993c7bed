// Package store persists directory bookmarks in a local SQLite database.
//
// A Store maps unique names to filesystem paths. Every operation is a single
// request against the database; the package holds no cache and no lock of
// its own, so cross-process exclusion is whatever SQLite provides. Failures
// are returned as *Error values carrying a Kind (see KindOf) so callers never
// need to inspect driver-specific errors.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// Field limits mirrored by the paths table definition.
const (
	MaxNameLength = 50
	MaxPathLength = 500
)

// Bookmark is a saved (name, path) pair.
type Bookmark struct {
	ID        int64
	Name      string
	Path      string
	CreatedAt time.Time // zero for rows written before schema version 1
}

// Store is a handle to an initialized bookmark database.
type Store struct {
	db       *sql.DB
	location string
	driver   Driver
}

// Option configures Open.
type Option func(*Store)

// WithDriver selects the SQLite driver. The default is DriverCGO.
func WithDriver(d Driver) Option {
	return func(s *Store) { s.driver = d }
}

// Open creates the database at location if needed and ensures the schema
// exists. It is safe to call on every process start. Any failure is
// reported as KindStorageUnavailable.
func Open(location string, opts ...Option) (*Store, error) {
	path, err := ResolveLocation(location)
	if err != nil {
		return nil, unavailable("open", err)
	}

	s := &Store{location: path, driver: DriverCGO}
	for _, opt := range opts {
		opt(s)
	}

	if path != memoryLocation {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, unavailable("open", fmt.Errorf("failed to create directory: %w", err))
		}
	}

	db, err := sql.Open(string(s.driver), s.driver.dsn(path))
	if err != nil {
		return nil, unavailable("open", fmt.Errorf("failed to open database: %w", err))
	}
	// One connection keeps :memory: databases alive between calls and
	// serializes writers inside this process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, unavailable("open", fmt.Errorf("failed to open database: %w", err))
	}

	s.db = db
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, unavailable("open", fmt.Errorf("failed to initialize schema: %w", err))
	}

	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Location returns the resolved database path.
func (s *Store) Location() string {
	return s.location
}

// Driver returns the driver the store was opened with.
func (s *Store) Driver() Driver {
	return s.driver
}

// Insert saves a new bookmark. It fails with KindDuplicateName when name is
// taken, leaving the existing row untouched.
func (s *Store) Insert(name, path string) error {
	if err := validate(name, path); err != nil {
		return &Error{Op: "insert", Name: name, Kind: KindInvalid, Err: err}
	}

	_, err := s.db.Exec(
		"INSERT INTO paths (name, path, created_at) VALUES (?, ?, ?)",
		name, path, time.Now().Unix(),
	)
	return classify("insert", name, err)
}

// Lookup returns the path saved under name, or a KindNotFound error.
func (s *Store) Lookup(name string) (string, error) {
	var path string
	err := s.db.QueryRow("SELECT COALESCE(path, '') FROM paths WHERE name = ?", name).Scan(&path)
	if err != nil {
		return "", classify("lookup", name, err)
	}
	return path, nil
}

// List returns every bookmark in insertion order.
func (s *Store) List() ([]Bookmark, error) {
	rows, err := s.db.Query("SELECT id, name, COALESCE(path, ''), created_at FROM paths ORDER BY id ASC")
	if err != nil {
		return nil, classify("list", "", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		var created int64
		if err := rows.Scan(&b.ID, &b.Name, &b.Path, &created); err != nil {
			return nil, classify("list", "", err)
		}
		if created > 0 {
			b.CreatedAt = time.Unix(created, 0)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", "", err)
	}

	return bookmarks, nil
}

// Remove deletes the bookmark called name. Removing a name that does not
// exist is not an error; the returned bool reports whether a row went away.
func (s *Store) Remove(name string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM paths WHERE name = ?", name)
	if err != nil {
		return false, classify("remove", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classify("remove", name, err)
	}
	return n > 0, nil
}

func validate(name, path string) error {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return fmt.Errorf("name must not be empty")
	case n > MaxNameLength:
		return fmt.Errorf("name is %d characters, limit is %d", n, MaxNameLength)
	}
	switch n := utf8.RuneCountInString(path); {
	case n == 0:
		return fmt.Errorf("path must not be empty")
	case n > MaxPathLength:
		return fmt.Errorf("path is %d characters, limit is %d", n, MaxPathLength)
	}
	return nil
}
