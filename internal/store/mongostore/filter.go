package mongostore

import (
	"regexp"

	"github.com/isdelr/interview-vault-be/internal/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// scopeFilter matches a single document by id inside scope.
func scopeFilter(id bson.ObjectID, scope store.Scope) bson.D {
	f := bson.D{{Key: "_id", Value: id}}
	if !scope.AllOwners {
		f = append(f, bson.E{Key: "createdBy", Value: scope.Owner})
	}
	return f
}

// questionFilter translates a store.QuestionFilter into a query document.
func questionFilter(filter store.QuestionFilter) bson.D {
	f := bson.D{}
	if !filter.Scope.AllOwners {
		f = append(f, bson.E{Key: "createdBy", Value: filter.Scope.Owner})
	}
	if filter.Category != "" {
		f = append(f, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.Difficulty != "" {
		f = append(f, bson.E{Key: "difficulty", Value: filter.Difficulty})
	}
	if filter.Keyword != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}
		f = append(f, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "question", Value: pattern}},
			bson.D{{Key: "answer", Value: pattern}},
			bson.D{{Key: "tags", Value: pattern}},
		}})
	}
	return f
}
