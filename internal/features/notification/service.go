package notification

import (
	"context"
	"time"

	"go-marketplace/internal/features/realtime"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LivePusher is the port into the live channel gateway. Absence of a
// connection and write failures both surface as a false return; the
// dispatcher never learns more and never needs to.
type LivePusher interface {
	PushToUser(userID string, event string, payload interface{}) bool
}

// DispatchOptions configures the optional parts of a dispatch. The zero
// value yields priority=medium, channels=[in-app], immediate delivery.
type DispatchOptions struct {
	Priority      Priority
	Channels      []Channel
	RelatedEntity *RelatedEntity
	URL           string
	ActionURL     string
	ActionText    string
	Metadata      map[string]interface{}
	ScheduledFor  *time.Time
}

type NotificationService interface {
	// Dispatch persists a notification and best-effort pushes it to the
	// target user's live connection. Only persistence failures are returned;
	// push failures never are.
	Dispatch(ctx context.Context, userID primitive.ObjectID, title, message string, notifType NotificationType, opts *DispatchOptions) (*Notification, error)

	GetUserNotifications(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	ArchiveNotification(ctx context.Context, id string, userID primitive.ObjectID) error
	ArchiveAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	DeleteNotification(ctx context.Context, id string, userID primitive.ObjectID) error

	// Scheduler entry points
	DeliverDueScheduled(ctx context.Context) (int, error)
	PurgeArchived(ctx context.Context, olderThan time.Duration) (int64, error)
}

type NotificationServiceImpl struct {
	repo   NotificationRepository
	pusher LivePusher
	log    *zap.Logger
}

func NewNotificationService(repo NotificationRepository, pusher LivePusher, log *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		repo:   repo,
		pusher: pusher,
		log:    log,
	}
}

func (s *NotificationServiceImpl) Dispatch(ctx context.Context, userID primitive.ObjectID, title, message string, notifType NotificationType, opts *DispatchOptions) (*Notification, error) {
	if opts == nil {
		opts = &DispatchOptions{}
	}

	n := &Notification{
		UserID:         userID,
		Title:          title,
		Message:        message,
		Type:           notifType,
		Priority:       opts.Priority,
		URL:            opts.URL,
		ActionURL:      opts.ActionURL,
		ActionText:     opts.ActionText,
		RelatedEntity:  opts.RelatedEntity,
		Channels:       opts.Channels,
		Metadata:       opts.Metadata,
		ScheduledFor:   opts.ScheduledFor,
		DeliveryStatus: DeliveryStatusPending,
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if len(n.Channels) == 0 {
		n.Channels = []Channel{ChannelInApp}
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	// Push must see a fully committed record: listeners may query for it
	// the moment the event arrives.
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if n.Sendable() {
		s.pushLive(ctx, n)
	}

	return n, nil
}

// pushLive attempts immediate delivery. A confirmed push promotes the record
// to sent; anything else leaves it pending for the pull API.
func (s *NotificationServiceImpl) pushLive(ctx context.Context, n *Notification) {
	if !s.pusher.PushToUser(n.UserID.Hex(), realtime.EventNewNotification, n) {
		return
	}

	n.DeliveryStatus = DeliveryStatusSent
	n.SentChannels = appendChannel(n.SentChannels, ChannelInApp)
	if err := s.repo.UpdateDelivery(ctx, n.ID, DeliveryStatusSent, n.SentChannels, ""); err != nil {
		s.log.Warn("failed to record delivery status",
			zap.String("notificationId", n.ID.Hex()), zap.Error(err))
	}
}

func (s *NotificationServiceImpl) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, opts)
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.MarkRead(ctx, objID, userID)
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationServiceImpl) ArchiveNotification(ctx context.Context, id string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Archive(ctx, objID, userID)
}

func (s *NotificationServiceImpl) ArchiveAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.ArchiveAllRead(ctx, userID)
}

func (s *NotificationServiceImpl) DeleteNotification(ctx context.Context, id string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, objID, userID)
}

// DeliverDueScheduled pushes scheduled notifications whose time has come to
// any target user who is currently online. Offline targets stay pending and
// remain reachable through the pull API.
func (s *NotificationServiceImpl) DeliverDueScheduled(ctx context.Context) (int, error) {
	due, err := s.repo.FindDueScheduled(ctx, time.Now(), 500)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for i := range due {
		n := due[i]
		if s.pusher.PushToUser(n.UserID.Hex(), realtime.EventNewNotification, &n) {
			sent := appendChannel(n.SentChannels, ChannelInApp)
			if err := s.repo.UpdateDelivery(ctx, n.ID, DeliveryStatusSent, sent, ""); err != nil {
				s.log.Warn("failed to record scheduled delivery",
					zap.String("notificationId", n.ID.Hex()), zap.Error(err))
				continue
			}
			delivered++
		}
	}
	return delivered, nil
}

func (s *NotificationServiceImpl) PurgeArchived(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.repo.DeleteArchivedBefore(ctx, time.Now().Add(-olderThan))
}

func appendChannel(channels []Channel, ch Channel) []Channel {
	for _, existing := range channels {
		if existing == ch {
			return channels
		}
	}
	return append(channels, ch)
}
