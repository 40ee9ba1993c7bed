package store

import (
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Driver names a registered database/sql SQLite driver.
type Driver string

const (
	// DriverCGO is github.com/mattn/go-sqlite3.
	DriverCGO Driver = "sqlite3"
	// DriverPure is modernc.org/sqlite, which needs no C toolchain.
	DriverPure Driver = "sqlite"
)

const memoryLocation = ":memory:"

// ParseDriver maps a configuration value to a Driver. The empty string
// selects DriverCGO.
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite3", "cgo", "mattn":
		return DriverCGO, nil
	case "sqlite", "pure", "modernc":
		return DriverPure, nil
	}
	return "", fmt.Errorf("unknown sqlite driver %q (want sqlite3 or sqlite)", s)
}

// dsn builds the driver-specific data source name for path. Transactions
// begin IMMEDIATE so concurrent writers wait on busy_timeout instead of
// failing a read-to-write lock upgrade with SQLITE_BUSY.
func (d Driver) dsn(path string) string {
	if d == DriverPure {
		return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"
}

// ResolveLocation turns a storage location into a plain file path (or
// ":memory:"). It accepts bare paths and sqlite://, sqlite: and file:
// connection strings; any query suffix is dropped.
func ResolveLocation(location string) (string, error) {
	loc := strings.TrimSpace(location)
	for _, prefix := range []string{"sqlite://", "sqlite:", "file:"} {
		if strings.HasPrefix(loc, prefix) {
			loc = strings.TrimPrefix(loc, prefix)
			break
		}
	}
	if i := strings.IndexByte(loc, '?'); i >= 0 {
		loc = loc[:i]
	}
	if loc == "" {
		return "", fmt.Errorf("empty storage location %q", location)
	}
	return loc, nil
}
