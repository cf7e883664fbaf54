package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surveymaster/server/internal/models"
)

const VotesCollection = "votes"

type MongoVotes struct {
	col *mongo.Collection
}

func NewMongoVotes(db *mongo.Database) *MongoVotes {
	return &MongoVotes{col: db.Collection(VotesCollection)}
}

// EnsureIndexes installs the compound unique index on (surveyId, userEmail).
// The index, not the application-level pre-check, is what actually holds the
// at-most-one-vote invariant under concurrent casts.
func (r *MongoVotes) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "surveyId", Value: 1},
			{Key: "userEmail", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoVotes) Find(ctx context.Context, surveyID, userEmail string) (*models.Vote, error) {
	var v models.Vote
	err := r.col.FindOne(ctx, bson.M{"surveyId": surveyID, "userEmail": userEmail}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MongoVotes) Insert(ctx context.Context, vote *models.Vote) (string, error) {
	res, err := r.col.InsertOne(ctx, vote)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
