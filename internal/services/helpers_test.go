package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/isdelr/interview-vault-be/internal/database"
	"github.com/isdelr/interview-vault-be/internal/store/sqlstore"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	s := sqlstore.New(db)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}
