package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/surveymaster/server/internal/models"
)

const PaymentsCollection = "payments"

type MongoPayments struct {
	col *mongo.Collection
}

func NewMongoPayments(db *mongo.Database) *MongoPayments {
	return &MongoPayments{col: db.Collection(PaymentsCollection)}
}

func (r *MongoPayments) FindByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *MongoPayments) FindAll(ctx context.Context) ([]models.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoPayments) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *MongoPayments) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoPayments) SetStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
