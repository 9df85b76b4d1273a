package mongostore

import (
	"context"
	"fmt"

	"github.com/isdelr/interview-vault-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type categoryDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Name        string        `bson:"name"`
	Description string        `bson:"description,omitempty"`
}

// CategoryStore reads the categories collection.
type CategoryStore struct {
	coll *mongo.Collection
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		categories = append(categories, models.Category{ID: d.ID.Hex(), Name: d.Name, Description: d.Description})
	}
	return categories, nil
}
