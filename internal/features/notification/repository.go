package notification

import (
	"context"
	"time"

	"go-marketplace/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListOptions filters a user's notification listing. Nil pointers mean
// "don't filter on this field".
type ListOptions struct {
	Page     int64
	Limit    int64
	Read     *bool
	Archived *bool
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Archive(ctx context.Context, id, userID primitive.ObjectID) error
	ArchiveAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	UpdateDelivery(ctx context.Context, id primitive.ObjectID, status DeliveryStatus, sent []Channel, failureReason string) error
	FindDueScheduled(ctx context.Context, now time.Time, limit int64) ([]Notification, error)
	DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type NotificationRepositoryImpl struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *database.MongodbDB) NotificationRepository {
	return &NotificationRepositoryImpl{
		collection: db.DB.Collection("notifications"),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *Notification) error {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]Notification, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	skip := (opts.Page - 1) * opts.Limit

	filter := bson.M{"user_id": userID}
	if opts.Read != nil {
		filter["read"] = *opts.Read
	}
	if opts.Archived != nil {
		filter["archived"] = *opts.Archived
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(opts.Limit)

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notifications := make([]Notification, 0)
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepositoryImpl) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"user_id":  userID,
		"read":     false,
		"archived": false,
	})
}

// MarkRead sets read/read_at exactly once. Marking an already-read record is
// a no-op, so read_at never moves after the first set.
func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID, "read": false},
		bson.M{"$set": bson.M{
			"read":       true,
			"read_at":    now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.ensureOwned(ctx, id, userID)
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	now := time.Now()
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{
			"read":       true,
			"read_at":    now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *NotificationRepositoryImpl) Archive(ctx context.Context, id, userID primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID, "archived": false},
		bson.M{"$set": bson.M{
			"archived":    true,
			"archived_at": now,
			"updated_at":  now,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.ensureOwned(ctx, id, userID)
	}
	return nil
}

func (r *NotificationRepositoryImpl) ArchiveAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	now := time.Now()
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": true, "archived": false},
		bson.M{"$set": bson.M{
			"archived":    true,
			"archived_at": now,
			"updated_at":  now,
		}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) UpdateDelivery(ctx context.Context, id primitive.ObjectID, status DeliveryStatus, sent []Channel, failureReason string) error {
	set := bson.M{
		"delivery_status": status,
		"updated_at":      time.Now(),
	}
	if len(sent) > 0 {
		set["sent_channels"] = sent
	}
	if failureReason != "" {
		set["failure_reason"] = failureReason
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *NotificationRepositoryImpl) FindDueScheduled(ctx context.Context, now time.Time, limit int64) ([]Notification, error) {
	filter := bson.M{
		"scheduled_for":   bson.M{"$lte": now},
		"delivery_status": DeliveryStatusPending,
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var due []Notification
	if err = cursor.All(ctx, &due); err != nil {
		return nil, err
	}
	return due, nil
}

func (r *NotificationRepositoryImpl) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"archived":    true,
		"archived_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *NotificationRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}, {Key: "archived", Value: 1}}},
		{Keys: bson.D{{Key: "scheduled_for", Value: 1}, {Key: "delivery_status", Value: 1}}},
	})
	return err
}

// ensureOwned distinguishes "already in the target state" from "not found or
// not yours" after a zero-match conditional update.
func (r *NotificationRepositoryImpl) ensureOwned(ctx context.Context, id, userID primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
