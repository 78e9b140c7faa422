package professional

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

type ProfessionalRepository interface {
	Create(ctx context.Context, p *Professional) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Professional, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*Professional, error)
	List(ctx context.Context, page, limit int64) ([]Professional, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	UpdateRating(ctx context.Context, userID primitive.ObjectID, rating float64, count int64) error
	EnsureIndexes(ctx context.Context) error
}

type ProfessionalRepositoryImpl struct {
	collection *mongo.Collection
}

func NewProfessionalRepository(db *database.MongodbDB) ProfessionalRepository {
	return &ProfessionalRepositoryImpl{
		collection: db.DB.Collection("professionals"),
	}
}

func (r *ProfessionalRepositoryImpl) Create(ctx context.Context, p *Professional) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProfessionalRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Professional, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProfessionalRepositoryImpl) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*Professional, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProfessionalRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*Professional, error) {
	var p Professional
	err := r.collection.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessionalRepositoryImpl) List(ctx context.Context, page, limit int64) ([]Professional, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	professionals := make([]Professional, 0)
	if err = cursor.All(ctx, &professionals); err != nil {
		return nil, 0, err
	}
	return professionals, total, nil
}

func (r *ProfessionalRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfessionalRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfessionalRepositoryImpl) UpdateRating(ctx context.Context, userID primitive.ObjectID, rating float64, count int64) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"rating":       rating,
			"review_count": count,
			"updated_at":   time.Now(),
		}},
	)
	return err
}

func (r *ProfessionalRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
