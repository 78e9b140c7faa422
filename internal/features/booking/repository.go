package booking

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

type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int64) ([]Booking, int64, error)
	ListByProfessional(ctx context.Context, professionalID primitive.ObjectID, page, limit int64) ([]Booking, int64, error)
	ListAll(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to BookingStatus) error
	EnsureIndexes(ctx context.Context) error
}

type BookingRepositoryImpl struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *database.MongodbDB) BookingRepository {
	return &BookingRepositoryImpl{
		collection: db.DB.Collection("bookings"),
	}
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, b *Booking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	b.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	var b Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepositoryImpl) ListByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int64) ([]Booking, int64, error) {
	return r.list(ctx, bson.M{"customer_id": customerID}, page, limit)
}

func (r *BookingRepositoryImpl) ListByProfessional(ctx context.Context, professionalID primitive.ObjectID, page, limit int64) ([]Booking, int64, error) {
	return r.list(ctx, bson.M{"professional_id": professionalID}, page, limit)
}

func (r *BookingRepositoryImpl) list(ctx context.Context, filter bson.M, page, limit int64) ([]Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

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

	bookings := make([]Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingRepositoryImpl) ListAll(ctx context.Context) ([]Booking, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus is a compare-and-swap: the write only lands if the booking is
// still in the expected from-state. A lost race surfaces as ErrConflict.
func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to BookingStatus) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{
			"status":     to,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}

func (r *BookingRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "professional_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
