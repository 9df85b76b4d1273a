package database

import (
	"context"
	"fmt"

	"github.com/isdelr/interview-vault-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names shared by the Mongo backend.
const (
	UsersCollection      = "users"
	RolesCollection      = "roles"
	QuestionsCollection  = "questions"
	CategoriesCollection = "categories"
)

// NewMongo connects to MongoDB and verifies the connection.
func NewMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// MigrateMongo creates the indexes the services rely on and seeds the
// default categories. It is safe to run on every start.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		RolesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CategoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		QuestionsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "difficulty", Value: 1}}},
			{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		},
	}
	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}

	categories := db.Collection(CategoriesCollection)
	for _, c := range models.DefaultCategories {
		_, err := categories.UpdateOne(ctx,
			bson.D{{Key: "name", Value: c.Name}},
			bson.D{{Key: "$setOnInsert", Value: bson.D{
				{Key: "name", Value: c.Name},
				{Key: "description", Value: c.Description},
			}}},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}
	return nil
}
