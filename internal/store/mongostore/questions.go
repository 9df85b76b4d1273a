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

type questionDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Category   string        `bson:"category"`
	Difficulty string        `bson:"difficulty"`
	Question   string        `bson:"question"`
	Answer     string        `bson:"answer"`
	Tags       string        `bson:"tags"`
	CreatedBy  string        `bson:"createdBy"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

func (d questionDoc) toModel() models.Question {
	return models.Question{
		ID:         d.ID.Hex(),
		Category:   d.Category,
		Difficulty: d.Difficulty,
		Question:   d.Question,
		Answer:     d.Answer,
		Tags:       d.Tags,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// QuestionStore persists questions in the questions collection.
type QuestionStore struct {
	coll *mongo.Collection
}

func (s *QuestionStore) Find(ctx context.Context, filter store.QuestionFilter) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, questionFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	var docs []questionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	questions := make([]models.Question, 0, len(docs))
	for _, d := range docs {
		questions = append(questions, d.toModel())
	}
	return questions, nil
}

// FindOne returns the question with id inside scope. Malformed ids cannot
// match anything and yield store.ErrNotFound.
func (s *QuestionStore) FindOne(ctx context.Context, id string, scope store.Scope) (models.Question, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Question{}, store.ErrNotFound
	}
	var doc questionDoc
	if err := s.coll.FindOne(ctx, scopeFilter(oid, scope)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Question{}, store.ErrNotFound
		}
		return models.Question{}, fmt.Errorf("mongo error: %w", err)
	}
	return doc.toModel(), nil
}

func (s *QuestionStore) Count(ctx context.Context, filter store.QuestionFilter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, questionFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("mongo error: %w", err)
	}
	return n, nil
}

func (s *QuestionStore) Create(ctx context.Context, q models.Question) (models.Question, error) {
	doc := questionDoc{
		ID:         bson.NewObjectID(),
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Question:   q.Question,
		Answer:     q.Answer,
		Tags:       q.Tags,
		CreatedBy:  q.CreatedBy,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Question{}, fmt.Errorf("question: %w", store.ErrDuplicate)
		}
		return models.Question{}, fmt.Errorf("mongo error: %w", err)
	}
	return doc.toModel(), nil
}

func (s *QuestionStore) Update(ctx context.Context, q models.Question, scope store.Scope) (models.Question, error) {
	oid, err := bson.ObjectIDFromHex(q.ID)
	if err != nil {
		return models.Question{}, store.ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "category", Value: q.Category},
		{Key: "difficulty", Value: q.Difficulty},
		{Key: "question", Value: q.Question},
		{Key: "answer", Value: q.Answer},
		{Key: "tags", Value: q.Tags},
		{Key: "updatedAt", Value: q.UpdatedAt},
	}}}

	var doc questionDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.coll.FindOneAndUpdate(ctx, scopeFilter(oid, scope), update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Question{}, store.ErrNotFound
		}
		return models.Question{}, fmt.Errorf("mongo error: %w", err)
	}
	return doc.toModel(), nil
}

func (s *QuestionStore) Delete(ctx context.Context, id string, scope store.Scope) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := s.coll.DeleteOne(ctx, scopeFilter(oid, scope))
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
