// Package store defines the persistence contracts the services depend on.
// Implementations live in sqlstore (embedded SQLite) and mongostore (MongoDB).
package store

import (
	"context"
	"errors"

	"github.com/isdelr/interview-vault-be/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the predicate.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Scope restricts question queries to one owner. AllOwners lifts the
// restriction and is only set for the admin view.
type Scope struct {
	Owner     string
	AllOwners bool
}

// OwnedBy returns a scope limited to owner.
func OwnedBy(owner string) Scope {
	return Scope{Owner: owner}
}

// QuestionFilter narrows a question listing. Empty fields are ignored,
// except Scope which is always applied.
type QuestionFilter struct {
	Scope      Scope
	Category   string
	Difficulty string
	// Keyword is matched as a case-insensitive literal substring of the
	// question, answer and tags fields.
	Keyword string
}

// UserStore persists user accounts.
type UserStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
}

// RoleStore persists role records.
type RoleStore interface {
	FindByName(ctx context.Context, name models.RoleName) (models.Role, error)
	Create(ctx context.Context, role models.Role) (models.Role, error)
}

// QuestionStore persists questions. Every method that takes a Scope embeds it
// in the query predicate.
type QuestionStore interface {
	Find(ctx context.Context, filter QuestionFilter) ([]models.Question, error)
	FindOne(ctx context.Context, id string, scope Scope) (models.Question, error)
	Count(ctx context.Context, filter QuestionFilter) (int64, error)
	Create(ctx context.Context, question models.Question) (models.Question, error)
	Update(ctx context.Context, question models.Question, scope Scope) (models.Question, error)
	Delete(ctx context.Context, id string, scope Scope) error
}

// CategoryStore lists categories.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

// Store bundles the per-collection stores of one backend.
type Store interface {
	Users() UserStore
	Roles() RoleStore
	Questions() QuestionStore
	Categories() CategoryStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
