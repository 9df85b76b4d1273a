package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
)

const questionColumns = "id, category, difficulty, question, answer, tags, created_by, created_at, updated_at"

// QuestionStore persists questions in the questions table.
type QuestionStore struct {
	db *sql.DB
}

// scanQuestion is a helper to scan a question from a row or rows object.
func scanQuestion(scanner rowScanner) (models.Question, error) {
	var q models.Question
	var answer, tags sql.NullString
	err := scanner.Scan(&q.ID, &q.Category, &q.Difficulty, &q.Question, &answer, &tags,
		&q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return q, err
	}
	q.Answer = answer.String
	q.Tags = tags.String
	return q, nil
}

// scopeClause appends the ownership predicate unless the scope spans all owners.
func scopeClause(scope store.Scope, where []string, args []interface{}) ([]string, []interface{}) {
	if scope.AllOwners {
		return where, args
	}
	return append(where, "created_by = ?"), append(args, scope.Owner)
}

func buildWhere(filter store.QuestionFilter) (string, []interface{}) {
	where, args := scopeClause(filter.Scope, nil, nil)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Difficulty != "" {
		where = append(where, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}
	if filter.Keyword != "" {
		where = append(where, fmt.Sprintf("(%[1]s(question, ?) OR %[1]s(answer, ?) OR %[1]s(tags, ?))", containsFunc))
		args = append(args, filter.Keyword, filter.Keyword, filter.Keyword)
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// Find returns the questions matching filter, newest first.
func (s *QuestionStore) Find(ctx context.Context, filter store.QuestionFilter) ([]models.Question, error) {
	where, args := buildWhere(filter)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions"+where+" ORDER BY created_at DESC, id", args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// FindOne returns the question with id inside scope.
func (s *QuestionStore) FindOne(ctx context.Context, id string, scope store.Scope) (models.Question, error) {
	where, args := scopeClause(scope, []string{"id = ?"}, []interface{}{id})
	row := s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE "+strings.Join(where, " AND "), args...)

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Question{}, store.ErrNotFound
		}
		return models.Question{}, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (s *QuestionStore) Count(ctx context.Context, filter store.QuestionFilter) (int64, error) {
	where, args := buildWhere(filter)
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (s *QuestionStore) Create(ctx context.Context, q models.Question) (models.Question, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO questions("+questionColumns+") VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		q.ID, q.Category, q.Difficulty, q.Question, q.Answer, q.Tags,
		q.CreatedBy, q.CreatedAt.UTC(), q.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return models.Question{}, fmt.Errorf("question %s: %w", q.ID, store.ErrDuplicate)
		}
		return models.Question{}, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

// Update overwrites the mutable fields of the question with q.ID inside scope.
// Owner and creation time are never written.
func (s *QuestionStore) Update(ctx context.Context, q models.Question, scope store.Scope) (models.Question, error) {
	where, args := scopeClause(scope, []string{"id = ?"}, []interface{}{q.ID})
	args = append([]interface{}{q.Category, q.Difficulty, q.Question, q.Answer, q.Tags, q.UpdatedAt.UTC()}, args...)

	res, err := s.db.ExecContext(ctx, `
		UPDATE questions SET category = ?, difficulty = ?, question = ?, answer = ?, tags = ?, updated_at = ?
		WHERE `+strings.Join(where, " AND "), args...)
	if err != nil {
		return models.Question{}, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Question{}, fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return models.Question{}, store.ErrNotFound
	}
	return s.FindOne(ctx, q.ID, scope)
}

func (s *QuestionStore) Delete(ctx context.Context, id string, scope store.Scope) error {
	where, args := scopeClause(scope, []string{"id = ?"}, []interface{}{id})
	res, err := s.db.ExecContext(ctx, "DELETE FROM questions WHERE "+strings.Join(where, " AND "), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
