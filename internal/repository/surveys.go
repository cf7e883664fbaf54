package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/surveymaster/server/internal/models"
)

const SurveysCollection = "surveys"

type MongoSurveys struct {
	col *mongo.Collection
}

func NewMongoSurveys(db *mongo.Database) *MongoSurveys {
	return &MongoSurveys{col: db.Collection(SurveysCollection)}
}

func (r *MongoSurveys) FindByStatus(ctx context.Context, status string) ([]models.Survey, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *MongoSurveys) FindByCreator(ctx context.Context, email string) ([]models.Survey, error) {
	return r.find(ctx, bson.M{"createdBy": email})
}

func (r *MongoSurveys) find(ctx context.Context, filter bson.M) ([]models.Survey, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	surveys := []models.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *MongoSurveys) FindByID(ctx context.Context, id string) (*models.Survey, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var s models.Survey
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSurveys) Insert(ctx context.Context, survey *models.Survey) (string, error) {
	res, err := r.col.InsertOne(ctx, survey)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Update rewrites content and status fields only. Tallies are excluded from
// the $set so authoring can never clobber the voting pipeline's counters.
func (r *MongoSurveys) Update(ctx context.Context, id string, survey *models.Survey) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":       survey.Title,
		"description": survey.Description,
		"category":    survey.Category,
		"deadline":    survey.Deadline,
		"status":      survey.Status,
		"updatedOn":   survey.UpdatedOn,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementTally bumps the yes or no counter by one in a single atomic
// update. Called only after a vote insert succeeded.
func (r *MongoSurveys) IncrementTally(ctx context.Context, id, choice string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	field := "noOption"
	if choice == models.ChoiceYes {
		field = "yesOption"
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSurveys) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
