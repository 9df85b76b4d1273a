package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type roleDoc struct {
	ID   bson.ObjectID `bson:"_id,omitempty"`
	Name string        `bson:"name"`
}

// RoleStore persists role records in the roles collection.
type RoleStore struct {
	coll *mongo.Collection
}

func (s *RoleStore) FindByName(ctx context.Context, name models.RoleName) (models.Role, error) {
	var doc roleDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "name", Value: string(name)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Role{}, store.ErrNotFound
		}
		return models.Role{}, fmt.Errorf("mongo error: %w", err)
	}
	return models.Role{ID: doc.ID.Hex(), Name: models.RoleName(doc.Name)}, nil
}

func (s *RoleStore) Create(ctx context.Context, role models.Role) (models.Role, error) {
	doc := roleDoc{ID: bson.NewObjectID(), Name: string(role.Name)}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Role{}, fmt.Errorf("role %q: %w", role.Name, store.ErrDuplicate)
		}
		return models.Role{}, fmt.Errorf("mongo error: %w", err)
	}
	return models.Role{ID: doc.ID.Hex(), Name: role.Name}, nil
}
