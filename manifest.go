package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

var manifestSchema = []string{
	`CREATE TABLE tables (
		name      TEXT PRIMARY KEY,
		dist_key  TEXT,
		sort_keys TEXT
	)`,
	`CREATE TABLE columns (
		table_name  TEXT NOT NULL,
		position    INTEGER NOT NULL,
		name        TEXT NOT NULL,
		source_type TEXT NOT NULL,
		target_type TEXT NOT NULL,
		extra       TEXT NOT NULL,
		dropped     INTEGER NOT NULL,
		PRIMARY KEY (table_name, position)
	)`,
	`CREATE TABLE diagnostics (
		line       INTEGER NOT NULL,
		table_name TEXT,
		message    TEXT NOT NULL
	)`,
}

// writeManifest records the report in a fresh SQLite file at path,
// replacing any previous manifest.
func writeManifest(path string, report *Report) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("manifest: remove old %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("manifest: open sqlite: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("manifest: begin: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range manifestSchema {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("manifest: create schema: %w", err)
		}
	}

	for _, t := range report.Tables {
		// a later definition of the same table replaces the earlier one
		if _, err := tx.Exec(`DELETE FROM columns WHERE table_name = ?`, t.Name); err != nil {
			return fmt.Errorf("manifest: table %s: %w", t.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO tables (name, dist_key, sort_keys) VALUES (?, ?, ?)`,
			t.Name, nullIfEmpty(t.DistKey), nullIfEmpty(strings.Join(t.SortKeys, ",")),
		); err != nil {
			return fmt.Errorf("manifest: table %s: %w", t.Name, err)
		}
		for i, c := range t.Columns {
			if _, err := tx.Exec(
				`INSERT INTO columns (table_name, position, name, source_type, target_type, extra, dropped) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.Name, i+1, c.Name, c.SourceType, c.Type, c.Extra, c.Dropped,
			); err != nil {
				return fmt.Errorf("manifest: column %s.%s: %w", t.Name, c.Name, err)
			}
		}
	}

	for _, d := range report.Diagnostics {
		if _, err := tx.Exec(
			`INSERT INTO diagnostics (line, table_name, message) VALUES (?, ?, ?)`,
			d.Line, nullIfEmpty(d.Table), d.Message,
		); err != nil {
			return fmt.Errorf("manifest: diagnostic line %d: %w", d.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("manifest: commit: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
