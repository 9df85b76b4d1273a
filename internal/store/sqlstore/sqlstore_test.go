package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/isdelr/interview-vault-be/internal/database"
	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
	"github.com/isdelr/interview-vault-be/internal/store/sqlstore"
	"github.com/stretchr/testify/assert"
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

func newQuestion(owner, category, text string, at time.Time) models.Question {
	return models.Question{
		Category:   category,
		Difficulty: models.DifficultyMedium,
		Question:   text,
		Answer:     `{"type":"text","value":"answer"}`,
		Tags:       "go,backend",
		CreatedBy:  owner,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	user := models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FullName:     "Alice Liddell",
		Roles:        []models.RoleName{models.RoleUser},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("Should create and find a user by username", func(t *testing.T) {
		created, err := s.Users().Create(ctx, user)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := s.Users().FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.Equal(t, "Alice Liddell", got.FullName)
		assert.Equal(t, []models.RoleName{models.RoleUser}, got.Roles)
		assert.True(t, got.IsActive)
		assert.True(t, now.Equal(got.CreatedAt))
	})

	t.Run("Should report existence by username and email", func(t *testing.T) {
		ok, err := s.Users().ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Users().ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should reject duplicate username and email", func(t *testing.T) {
		dup := user
		dup.Email = "other@example.com"
		_, err := s.Users().Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrDuplicate)

		dup = user
		dup.Username = "alice2"
		_, err = s.Users().Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("Should return ErrNotFound for unknown users", func(t *testing.T) {
		_, err := s.Users().FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRoleStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Roles().FindByName(ctx, models.RoleUser)
	assert.ErrorIs(t, err, store.ErrNotFound)

	created, err := s.Roles().Create(ctx, models.Role{Name: models.RoleUser})
	require.NoError(t, err)

	got, err := s.Roles().FindByName(ctx, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.Roles().Create(ctx, models.Role{Name: models.RoleUser})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestCategoryStore_ListsSeededCategories(t *testing.T) {
	s := newTestStore(t)

	categories, err := s.Categories().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, len(models.DefaultCategories))
	for _, c := range categories {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Name)
	}
}

func TestQuestionStore_Scoping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	qs := s.Questions()
	base := time.Now().UTC()

	a1, err := qs.Create(ctx, newQuestion("alice", "Algorithms", "Explain Binary Search", base))
	require.NoError(t, err)
	_, err = qs.Create(ctx, newQuestion("alice", "Core Java", "What is a HashMap?", base.Add(time.Second)))
	require.NoError(t, err)
	b1, err := qs.Create(ctx, newQuestion("bob", "Algorithms", "Explain binary trees", base.Add(2*time.Second)))
	require.NoError(t, err)

	t.Run("Should list only the owner's questions newest first", func(t *testing.T) {
		got, err := qs.Find(ctx, store.QuestionFilter{Scope: store.OwnedBy("alice")})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "What is a HashMap?", got[0].Question)
		assert.Equal(t, a1.ID, got[1].ID)
	})

	t.Run("Should list every owner's questions for AllOwners", func(t *testing.T) {
		got, err := qs.Find(ctx, store.QuestionFilter{Scope: store.Scope{AllOwners: true}, Category: "Algorithms"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Should match keywords case-insensitively as literals", func(t *testing.T) {
		for _, kw := range []string{"binary", "SEARCH", "Go,Back"} {
			got, err := qs.Find(ctx, store.QuestionFilter{Scope: store.OwnedBy("alice"), Keyword: kw})
			require.NoError(t, err, kw)
			assert.NotEmpty(t, got, kw)
		}
		got, err := qs.Find(ctx, store.QuestionFilter{Scope: store.OwnedBy("alice"), Keyword: "b.nary"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Should count per owner", func(t *testing.T) {
		n, err := qs.Count(ctx, store.QuestionFilter{Scope: store.OwnedBy("alice")})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		n, err = qs.Count(ctx, store.QuestionFilter{Scope: store.OwnedBy("carol")})
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("Should hide other owners' questions from FindOne, Update and Delete", func(t *testing.T) {
		_, err := qs.FindOne(ctx, b1.ID, store.OwnedBy("alice"))
		assert.ErrorIs(t, err, store.ErrNotFound)

		hijack := b1
		hijack.Question = "hijacked"
		_, err = qs.Update(ctx, hijack, store.OwnedBy("alice"))
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.ErrorIs(t, qs.Delete(ctx, b1.ID, store.OwnedBy("alice")), store.ErrNotFound)

		got, err := qs.FindOne(ctx, b1.ID, store.OwnedBy("bob"))
		require.NoError(t, err)
		assert.Equal(t, "Explain binary trees", got.Question)
	})

	t.Run("Should update mutable fields only", func(t *testing.T) {
		changed := a1
		changed.Tags = "search"
		changed.CreatedBy = "mallory"
		changed.UpdatedAt = base.Add(time.Hour)

		got, err := qs.Update(ctx, changed, store.OwnedBy("alice"))
		require.NoError(t, err)
		assert.Equal(t, "search", got.Tags)
		assert.Equal(t, "alice", got.CreatedBy)
		assert.True(t, a1.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, changed.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("Should delete within scope", func(t *testing.T) {
		require.NoError(t, qs.Delete(ctx, a1.ID, store.OwnedBy("alice")))
		_, err := qs.FindOne(ctx, a1.ID, store.OwnedBy("alice"))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestQuestionStore_SearchFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	qs := s.Questions()

	q := newQuestion("alice", "Concurrency", "Что такое ГОРУТИНА в Go? Größe Élan", time.Now().UTC())
	q.Answer = "Лёгкий поток"
	q.Tags = "Ünicode"
	_, err := qs.Create(ctx, q)
	require.NoError(t, err)

	for _, kw := range []string{"горутина", "GRÖßE", "größe", "élan", "ЛЁГКИЙ", "ünicode"} {
		t.Run("Should match "+kw, func(t *testing.T) {
			got, err := qs.Find(ctx, store.QuestionFilter{Scope: store.OwnedBy("alice"), Keyword: kw})
			require.NoError(t, err)
			assert.Len(t, got, 1)

			n, err := qs.Count(ctx, store.QuestionFilter{Scope: store.OwnedBy("alice"), Keyword: kw})
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}

	t.Run("Should not match other owners", func(t *testing.T) {
		got, err := qs.Find(ctx, store.QuestionFilter{Scope: store.OwnedBy("bob"), Keyword: "горутина"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestUserStore_CorruptRolesSurfaceAsError(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))
	s := sqlstore.New(db)
	t.Cleanup(func() { s.Close(ctx) })

	now := time.Now().UTC()
	_, err = s.Users().Create(ctx, models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Roles:        []models.RoleName{models.RoleUser},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE users SET roles_json = '["ROLE_USER"' WHERE username = 'alice'`)
	require.NoError(t, err)

	_, err = s.Users().FindByUsername(ctx, "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "decode roles")
}
