// Package sqlstore implements the store contracts on top of SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/isdelr/interview-vault-be/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// containsFunc is the SQL name of the Unicode-aware case-insensitive
// substring match. SQLite's lower() folds ASCII letters only.
const containsFunc = "vault_contains"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(containsFunc, 2, foldContains)
}

// foldContains reports whether the first argument contains the second,
// ignoring case. NULL on either side never matches.
func foldContains(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	hay, ok := textArg(args[0])
	if !ok {
		return int64(0), nil
	}
	needle, ok := textArg(args[1])
	if !ok {
		return int64(0), nil
	}
	if strings.Contains(strings.ToLower(hay), strings.ToLower(needle)) {
		return int64(1), nil
	}
	return int64(0), nil
}

func textArg(v driver.Value) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// Store is the SQLite-backed store.Store.
type Store struct {
	db         *sql.DB
	users      *UserStore
	roles      *RoleStore
	questions  *QuestionStore
	categories *CategoryStore
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{
		db:         db,
		users:      &UserStore{db: db},
		roles:      &RoleStore{db: db},
		questions:  &QuestionStore{db: db},
		categories: &CategoryStore{db: db},
	}
}

func (s *Store) Users() store.UserStore         { return s.users }
func (s *Store) Roles() store.RoleStore         { return s.roles }
func (s *Store) Questions() store.QuestionStore { return s.questions }
func (s *Store) Categories() store.CategoryStore {
	return s.categories
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY rejection.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
