package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
)

// UserStore persists users in the users table.
type UserStore struct {
	db *sql.DB
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username)
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email)
}

func (s *UserStore) exists(ctx context.Context, query, arg string) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

// FindByUsername returns the user including the password hash.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, full_name, roles_json, is_active, created_at, updated_at
		FROM users WHERE username = ?`, username)

	var user models.User
	var fullName sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &fullName,
		&user.RolesJSON, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	user.FullName = fullName.String
	if err := user.PrepareForAPI(); err != nil {
		return models.User{}, fmt.Errorf("user %q: %w", username, err)
	}
	return user, nil
}

// Create inserts a user. A username or email collision yields store.ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.PrepareForSave()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users(id, username, email, password_hash, full_name, roles_json, is_active, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FullName,
		user.RolesJSON, user.IsActive, user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("user %q: %w", user.Username, store.ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
