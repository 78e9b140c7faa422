package favorite

import (
	"context"
	"time"

	"go-marketplace/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, professionalID primitive.ObjectID) error
	Remove(ctx context.Context, userID, professionalID primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Favorite, int64, error)
	Exists(ctx context.Context, userID, professionalID primitive.ObjectID) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type FavoriteRepositoryImpl struct {
	collection *mongo.Collection
}

func NewFavoriteRepository(db *database.MongodbDB) FavoriteRepository {
	return &FavoriteRepositoryImpl{
		collection: db.DB.Collection("favorites"),
	}
}

// Add is idempotent. Re-adding an existing favorite keeps the original
// created_at and returns nil.
func (r *FavoriteRepositoryImpl) Add(ctx context.Context, userID, professionalID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID, "professional_id": professionalID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":         userID,
		"professional_id": professionalID,
		"created_at":      time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *FavoriteRepositoryImpl) Remove(ctx context.Context, userID, professionalID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"user_id":         userID,
		"professional_id": professionalID,
	})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Favorite, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{"user_id": userID}

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

	favorites := make([]Favorite, 0)
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *FavoriteRepositoryImpl) Exists(ctx context.Context, userID, professionalID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user_id":         userID,
		"professional_id": professionalID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoriteRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "professional_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
