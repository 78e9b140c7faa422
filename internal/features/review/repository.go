package review

import (
	"context"
	"errors"
	"time"

	"go-marketplace/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepository interface {
	Create(ctx context.Context, rev *Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*Review, error)
	ListByProfessional(ctx context.Context, professionalID primitive.ObjectID, page, limit int64) ([]Review, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AggregateForProfessional(ctx context.Context, professionalID primitive.ObjectID) (avg float64, count int64, err error)
	EnsureIndexes(ctx context.Context) error
}

type ReviewRepositoryImpl struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *database.MongodbDB) ReviewRepository {
	return &ReviewRepositoryImpl{
		collection: db.DB.Collection("reviews"),
	}
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, rev *Review) error {
	now := time.Now()
	rev.CreatedAt = now
	rev.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, rev)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyReviewed
	}
	if err != nil {
		return err
	}
	rev.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ReviewRepositoryImpl) FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*Review, error) {
	return r.findOne(ctx, bson.M{"booking_id": bookingID})
}

func (r *ReviewRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*Review, error) {
	var rev Review
	err := r.collection.FindOne(ctx, filter).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepositoryImpl) ListByProfessional(ctx context.Context, professionalID primitive.ObjectID, page, limit int64) ([]Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{"professional_id": professionalID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	reviews := make([]Review, 0)
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) AggregateForProfessional(ctx context.Context, professionalID primitive.ObjectID) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"professional_id": professionalID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Avg, results[0].Count, nil
}

func (r *ReviewRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "professional_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return err
}
