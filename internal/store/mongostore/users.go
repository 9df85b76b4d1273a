package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type userDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	FullName     string        `bson:"fullName"`
	Roles        []string      `bson:"roles"`
	IsActive     bool          `bson:"isActive"`
	CreatedAt    time.Time     `bson:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt"`
}

func (d userDoc) toModel() models.User {
	roles := make([]models.RoleName, 0, len(d.Roles))
	for _, r := range d.Roles {
		roles = append(roles, models.RoleName(r))
	}
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		Roles:        roles,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UserStore persists users in the users collection.
type UserStore struct {
	coll *mongo.Collection
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *UserStore) exists(ctx context.Context, filter bson.D) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo error: %w", err)
	}
	return n > 0, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, fmt.Errorf("mongo error: %w", err)
	}
	return doc.toModel(), nil
}

func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	doc := userDoc{
		ID:           bson.NewObjectID(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		Roles:        roles,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("user %q: %w", user.Username, store.ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("mongo error: %w", err)
	}
	return doc.toModel(), nil
}
