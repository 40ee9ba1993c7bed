package store

import (
	"database/sql"
	"fmt"
)

// Schema versions (PRAGMA user_version):
// v0: paths(id, name, path) as written by the first releases
// v1: added created_at
const CurrentSchemaVersion = 1

const pathsTable = `
CREATE TABLE IF NOT EXISTS paths (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(50) UNIQUE NOT NULL,
	path VARCHAR(500) NOT NULL,
	created_at INTEGER NOT NULL DEFAULT 0
);`

// column is a column that may be missing from tables created by an older
// schema version.
type column struct {
	Table  string
	Column string
	Def    string
}

var addedColumns = []column{
	{"paths", "created_at", "INTEGER NOT NULL DEFAULT 0"},
}

// migrate brings the database to CurrentSchemaVersion in one transaction.
func (s *Store) migrate() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var version int
	if err := tx.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > CurrentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported version %d", version, CurrentSchemaVersion)
	}

	if _, err := tx.Exec(pathsTable); err != nil {
		return fmt.Errorf("create paths table: %w", err)
	}

	for _, c := range addedColumns {
		ok, err := columnExists(tx, c.Table, c.Column)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.Table, c.Column, c.Def)
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("add column %s.%s: %w", c.Table, c.Column, err)
		}
	}

	if version != CurrentSchemaVersion {
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", CurrentSchemaVersion)); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	}

	return tx.Commit()
}

// SchemaVersion reports the database's PRAGMA user_version.
func (s *Store) SchemaVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, classify("schema", "", err)
	}
	return version, nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info.
func columnExists(tx *sql.Tx, table, name string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notnull, pk int
		var colName, ctype string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &colName, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("inspect table %s: %w", table, err)
		}
		if colName == name {
			return true, nil
		}
	}
	return false, rows.Err()
}
