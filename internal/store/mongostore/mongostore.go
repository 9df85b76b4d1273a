// Package mongostore implements the store contracts on top of MongoDB.
package mongostore

import (
	"context"

	"github.com/isdelr/interview-vault-be/internal/database"
	"github.com/isdelr/interview-vault-be/internal/store"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Store is the MongoDB-backed store.Store.
type Store struct {
	client     *mongo.Client
	users      *UserStore
	roles      *RoleStore
	questions  *QuestionStore
	categories *CategoryStore
}

// New wraps a connected client and the database holding the vault collections.
func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client:     client,
		users:      &UserStore{coll: db.Collection(database.UsersCollection)},
		roles:      &RoleStore{coll: db.Collection(database.RolesCollection)},
		questions:  &QuestionStore{coll: db.Collection(database.QuestionsCollection)},
		categories: &CategoryStore{coll: db.Collection(database.CategoriesCollection)},
	}
}

func (s *Store) Users() store.UserStore          { return s.users }
func (s *Store) Roles() store.RoleStore          { return s.roles }
func (s *Store) Questions() store.QuestionStore  { return s.questions }
func (s *Store) Categories() store.CategoryStore { return s.categories }

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
