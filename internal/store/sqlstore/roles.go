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

// RoleStore persists role records in the roles table.
type RoleStore struct {
	db *sql.DB
}

func (s *RoleStore) FindByName(ctx context.Context, name models.RoleName) (models.Role, error) {
	var role models.Role
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM roles WHERE name = ?", name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Role{}, store.ErrNotFound
		}
		return models.Role{}, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

func (s *RoleStore) Create(ctx context.Context, role models.Role) (models.Role, error) {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, "INSERT INTO roles(id, name) VALUES(?, ?)", role.ID, role.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Role{}, fmt.Errorf("role %q: %w", role.Name, store.ErrDuplicate)
		}
		return models.Role{}, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}
