package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/interview-vault-be/internal/models"
	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new SQLite connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers anyway; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema and seeds
// the default categories.
func Migrate(ctx context.Context, db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT,
		roles_json TEXT NOT NULL DEFAULT '[]',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roles (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT NOT NULL PRIMARY KEY,
		category TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT,
		tags TEXT,
		created_by TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
	CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty);
	CREATE INDEX IF NOT EXISTS idx_questions_created_by ON questions(created_by);
	`
	if _, err := db.ExecContext(ctx, sqlStmt); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for _, c := range models.DefaultCategories {
		_, err := db.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories(id, name, description) VALUES(?, ?, ?)",
			uuid.New().String(), c.Name, c.Description)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}
	return nil
}
