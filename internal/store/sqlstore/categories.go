package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/interview-vault-be/internal/models"
)

// CategoryStore reads the categories table.
type CategoryStore struct {
	db *sql.DB
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		c.Description = desc.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
