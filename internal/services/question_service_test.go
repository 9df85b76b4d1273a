package services

import (
	"context"
	"testing"
	"time"

	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = Caller{Username: "alice", Roles: []models.RoleName{models.RoleUser}}
	bob   = Caller{Username: "bob", Roles: []models.RoleName{models.RoleUser}}
	admin = Caller{Username: "root", Roles: []models.RoleName{models.RoleUser, models.RoleAdmin}}
)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newQuestionService(t *testing.T) *QuestionService {
	t.Helper()
	svc := NewQuestionService(newTestStore(t).Questions())
	svc.now = steppingClock()
	return svc
}

func sampleQuestion(text string) models.Question {
	return models.Question{
		Category:   "Algorithms",
		Difficulty: models.DifficultyEasy,
		Question:   text,
		Answer:     `[{"type":"code","lang":"go","value":"sort.Search(n, f)"}]`,
		Tags:       "search,arrays",
	}
}

func TestQuestionService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	in := sampleQuestion("Explain Binary Search")
	in.ID = "client-chosen"
	in.CreatedBy = "mallory"

	got, err := svc.Create(ctx, in, alice)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.NotEqual(t, "client-chosen", got.ID)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestQuestionService_StampsUTC(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)
	zone := time.FixedZone("UTC-5", -5*3600)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, zone) }

	created, err := svc.Create(ctx, sampleQuestion("Explain Binary Search"), alice)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, created.CreatedAt.Location())
	assert.Equal(t, time.UTC, created.UpdatedAt.Location())

	fetched, err := svc.Get(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))
	_, offset := fetched.CreatedAt.Zone()
	assert.Zero(t, offset)

	updated, err := svc.Update(ctx, created.ID, sampleQuestion("Explain Interpolation Search"), alice)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, updated.UpdatedAt.Location())
}

func TestQuestionService_OwnershipIsIndistinguishableFromAbsence(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	q, err := svc.Create(ctx, sampleQuestion("Explain Binary Search"), alice)
	require.NoError(t, err)

	_, err = svc.Get(ctx, q.ID, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, q.ID, sampleQuestion("stolen"), bob)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, q.ID, bob)
	assert.ErrorIs(t, err, ErrNotFound)

	_, errMissing := svc.Get(ctx, "does-not-exist", bob)
	assert.ErrorIs(t, errMissing, ErrNotFound)

	got, err := svc.Get(ctx, q.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Explain Binary Search", got.Question)
}

func TestQuestionService_GetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	q, err := svc.Create(ctx, sampleQuestion("What is a goroutine?"), alice)
	require.NoError(t, err)

	first, err := svc.Get(ctx, q.ID, alice)
	require.NoError(t, err)
	second, err := svc.Get(ctx, q.ID, alice)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Question, second.Question)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Tags, second.Tags)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))
}

func TestQuestionService_UpdateIsFullOverwrite(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	orig, err := svc.Create(ctx, sampleQuestion("Explain Binary Search"), alice)
	require.NoError(t, err)

	change := sampleQuestion("Explain Binary Search")
	change.Tags = "search,arrays,logn"
	change.CreatedBy = "bob"

	updated, err := svc.Update(ctx, orig.ID, change, alice)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, orig.Category, updated.Category)
	assert.Equal(t, orig.Difficulty, updated.Difficulty)
	assert.Equal(t, orig.Question, updated.Question)
	assert.Equal(t, orig.Answer, updated.Answer)
	assert.Equal(t, "search,arrays,logn", updated.Tags)
	assert.Equal(t, "alice", updated.CreatedBy)
	assert.True(t, orig.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(orig.UpdatedAt))

	t.Run("Should clear fields omitted from the update", func(t *testing.T) {
		blank := sampleQuestion("Explain Binary Search")
		blank.Tags = ""
		got, err := svc.Update(ctx, orig.ID, blank, alice)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})

	t.Run("Should fail for a missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", change, alice)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQuestionService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	_, err := svc.Create(ctx, sampleQuestion("Explain Binary Search"), alice)
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleQuestion("Explain Binary Search"), bob)
	require.NoError(t, err)

	for _, kw := range []string{"binary", "SEARCH", "sort.search"} {
		got, err := svc.Search(ctx, kw, alice)
		require.NoError(t, err)
		require.Len(t, got, 1, kw)
		assert.Equal(t, "alice", got[0].CreatedBy)
	}

	got, err := svc.Search(ctx, "heap", alice)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Search(ctx, "   ", alice)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuestionService_ListAndCount(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	const n = 3
	for i := 0; i < n; i++ {
		q := sampleQuestion("question")
		if i == 0 {
			q.Category = "System Design"
			q.Difficulty = models.DifficultyHard
		}
		_, err := svc.Create(ctx, q, alice)
		require.NoError(t, err)
	}

	count, err := svc.Count(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, n, count)

	count, err = svc.Count(ctx, bob)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	all, err := svc.List(ctx, alice, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, n)
	assert.True(t, all[0].CreatedAt.After(all[n-1].CreatedAt))

	byCategory, err := svc.ListByCategory(ctx, "Algorithms", alice)
	require.NoError(t, err)
	assert.Len(t, byCategory, n-1)

	hard, err := svc.List(ctx, alice, ListFilter{Difficulty: models.DifficultyHard})
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, "System Design", hard[0].Category)

	none, err := svc.List(ctx, bob, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuestionService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	q, err := svc.Create(ctx, sampleQuestion("Explain Binary Search"), alice)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, q.ID, alice))

	_, err = svc.Get(ctx, q.ID, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, q.ID, alice), ErrNotFound)
}

func TestQuestionService_AdminView(t *testing.T) {
	ctx := context.Background()
	svc := newQuestionService(t)

	q, err := svc.Create(ctx, sampleQuestion("Explain Binary Search"), alice)
	require.NoError(t, err)

	t.Run("Should stay scoped when the admin view is not requested", func(t *testing.T) {
		_, err := svc.Get(ctx, q.ID, admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should ignore the admin view for non-admins", func(t *testing.T) {
		sneaky := bob
		sneaky.AdminView = true
		_, err := svc.Get(ctx, q.ID, sneaky)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should see and manage every owner's questions", func(t *testing.T) {
		view := admin
		view.AdminView = true

		count, err := svc.Count(ctx, view)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		updated, err := svc.Update(ctx, q.ID, sampleQuestion("Moderated"), view)
		require.NoError(t, err)
		assert.Equal(t, "alice", updated.CreatedBy)

		require.NoError(t, svc.Delete(ctx, q.ID, view))
		_, err = svc.Get(ctx, q.ID, alice)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
