package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
)

// Caller identifies who is invoking a question operation. AdminView asks for
// the unscoped catalog and is honored only for ROLE_ADMIN holders.
type Caller struct {
	Username  string
	Roles     []models.RoleName
	AdminView bool
}

// scope returns the ownership predicate for every store call made on behalf
// of c.
func (c Caller) scope() store.Scope {
	if c.AdminView && models.ContainsRole(c.Roles, models.RoleAdmin) {
		return store.Scope{AllOwners: true}
	}
	return store.OwnedBy(c.Username)
}

// ListFilter narrows List. Empty fields are ignored.
type ListFilter struct {
	Category   string
	Difficulty string
}

// QuestionServiceProvider defines the interface for question services.
type QuestionServiceProvider interface {
	List(ctx context.Context, caller Caller, filter ListFilter) ([]models.Question, error)
	Get(ctx context.Context, id string, caller Caller) (models.Question, error)
	ListByCategory(ctx context.Context, category string, caller Caller) ([]models.Question, error)
	Search(ctx context.Context, keyword string, caller Caller) ([]models.Question, error)
	Count(ctx context.Context, caller Caller) (int64, error)
	Create(ctx context.Context, question models.Question, caller Caller) (models.Question, error)
	Update(ctx context.Context, id string, question models.Question, caller Caller) (models.Question, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

// QuestionService provides owner-scoped question management. A question that
// belongs to someone else is reported exactly like a missing one.
type QuestionService struct {
	questions store.QuestionStore
	now       func() time.Time
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions store.QuestionStore) *QuestionService {
	return &QuestionService{questions: questions, now: time.Now}
}

// List returns the caller's questions, newest first.
func (s *QuestionService) List(ctx context.Context, caller Caller, filter ListFilter) ([]models.Question, error) {
	return s.questions.Find(ctx, store.QuestionFilter{
		Scope:      caller.scope(),
		Category:   filter.Category,
		Difficulty: filter.Difficulty,
	})
}

// Get returns a single question visible to the caller.
func (s *QuestionService) Get(ctx context.Context, id string, caller Caller) (models.Question, error) {
	q, err := s.questions.FindOne(ctx, id, caller.scope())
	if err != nil {
		return models.Question{}, notFound(err, id)
	}
	return q, nil
}

// ListByCategory returns the caller's questions in one category.
func (s *QuestionService) ListByCategory(ctx context.Context, category string, caller Caller) ([]models.Question, error) {
	return s.List(ctx, caller, ListFilter{Category: category})
}

// Search matches keyword case-insensitively against question, answer and tags.
func (s *QuestionService) Search(ctx context.Context, keyword string, caller Caller) ([]models.Question, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: keyword is required", ErrValidation)
	}
	return s.questions.Find(ctx, store.QuestionFilter{Scope: caller.scope(), Keyword: keyword})
}

// Count returns the number of questions visible to the caller.
func (s *QuestionService) Count(ctx context.Context, caller Caller) (int64, error) {
	return s.questions.Count(ctx, store.QuestionFilter{Scope: caller.scope()})
}

// Create stores question as owned by the caller.
func (s *QuestionService) Create(ctx context.Context, question models.Question, caller Caller) (models.Question, error) {
	now := s.now().UTC()
	question.ID = ""
	question.CreatedBy = caller.Username
	question.CreatedAt = now
	question.UpdatedAt = now
	return s.questions.Create(ctx, question)
}

// Update overwrites category, difficulty, question, answer and tags.
func (s *QuestionService) Update(ctx context.Context, id string, question models.Question, caller Caller) (models.Question, error) {
	scope := caller.scope()
	existing, err := s.questions.FindOne(ctx, id, scope)
	if err != nil {
		return models.Question{}, notFound(err, id)
	}

	existing.Category = question.Category
	existing.Difficulty = question.Difficulty
	existing.Question = question.Question
	existing.Answer = question.Answer
	existing.Tags = question.Tags
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.questions.Update(ctx, existing, scope)
	if err != nil {
		return models.Question{}, notFound(err, id)
	}
	return updated, nil
}

// Delete removes a question visible to the caller.
func (s *QuestionService) Delete(ctx context.Context, id string, caller Caller) error {
	scope := caller.scope()
	if _, err := s.questions.FindOne(ctx, id, scope); err != nil {
		return notFound(err, id)
	}
	return notFound(s.questions.Delete(ctx, id, scope), id)
}

// notFound translates store.ErrNotFound into ErrNotFound and passes other
// errors through.
func notFound(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: question %s", ErrNotFound, id)
	}
	return err
}
