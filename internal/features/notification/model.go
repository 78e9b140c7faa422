package notification

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
	NotificationTypeBooking NotificationType = "booking"
	NotificationTypeReview  NotificationType = "review"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeMessage NotificationType = "message"
	NotificationTypeAlert   NotificationType = "alert"
)

func ParseNotificationType(s string) (NotificationType, bool) {
	switch NotificationType(s) {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning,
		NotificationTypeError, NotificationTypeBooking, NotificationTypeReview,
		NotificationTypePayment, NotificationTypeMessage, NotificationTypeAlert:
		return NotificationType(s), true
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), true
	}
	return "", false
}

type Channel string

const (
	ChannelInApp Channel = "in-app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush:
		return Channel(s), true
	}
	return "", false
}

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusFailed    DeliveryStatus = "failed"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

type RelatedEntityType string

const (
	RelatedEntityBooking      RelatedEntityType = "booking"
	RelatedEntityReview       RelatedEntityType = "review"
	RelatedEntityService      RelatedEntityType = "service"
	RelatedEntityUser         RelatedEntityType = "user"
	RelatedEntityProfessional RelatedEntityType = "professional"
	RelatedEntityFile         RelatedEntityType = "file"
)

func ParseRelatedEntityType(s string) (RelatedEntityType, bool) {
	switch RelatedEntityType(s) {
	case RelatedEntityBooking, RelatedEntityReview, RelatedEntityService,
		RelatedEntityUser, RelatedEntityProfessional, RelatedEntityFile:
		return RelatedEntityType(s), true
	}
	return "", false
}

// RelatedEntity points at the document the notification is about. The type
// names the collection the id resolves against.
type RelatedEntity struct {
	Type RelatedEntityType  `bson:"type" json:"type"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

const (
	TitleMaxLen   = 100
	MessageMaxLen = 500
)

// Notification is one persisted notification record. Content fields
// (type/title/message) are immutable after creation; only the read, archive
// and delivery lifecycles mutate.
type Notification struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title    string             `bson:"title" json:"title"`
	Message  string             `bson:"message" json:"message"`
	Type     NotificationType   `bson:"type" json:"type"`
	Priority Priority           `bson:"priority" json:"priority"`

	Read       bool       `bson:"read" json:"read"`
	ReadAt     *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`
	Archived   bool       `bson:"archived" json:"archived"`
	ArchivedAt *time.Time `bson:"archived_at,omitempty" json:"archived_at,omitempty"`

	URL        string `bson:"url,omitempty" json:"url,omitempty"`
	ActionURL  string `bson:"action_url,omitempty" json:"action_url,omitempty"`
	ActionText string `bson:"action_text,omitempty" json:"action_text,omitempty"`

	RelatedEntity *RelatedEntity `bson:"related_entity,omitempty" json:"related_entity,omitempty"`

	Channels       []Channel      `bson:"channels" json:"channels"`
	SentChannels   []Channel      `bson:"sent_channels,omitempty" json:"sent_channels,omitempty"`
	DeliveryStatus DeliveryStatus `bson:"delivery_status" json:"delivery_status"`
	FailureReason  string         `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`

	ScheduledFor *time.Time             `bson:"scheduled_for,omitempty" json:"scheduled_for,omitempty"`
	Metadata     map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Sendable reports whether the record is eligible for an immediate live push:
// not scheduled in the future and still pending delivery.
func (n *Notification) Sendable() bool {
	if n.DeliveryStatus != DeliveryStatusPending {
		return false
	}
	if n.ScheduledFor != nil && n.ScheduledFor.After(time.Now()) {
		return false
	}
	return true
}

// Validate checks the record before it is persisted.
func (n *Notification) Validate() error {
	if n.UserID.IsZero() {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(n.Title) > TitleMaxLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, TitleMaxLen)
	}
	if n.Message == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	if utf8.RuneCountInString(n.Message) > MessageMaxLen {
		return fmt.Errorf("%w: message exceeds %d characters", ErrValidation, MessageMaxLen)
	}
	if _, ok := ParseNotificationType(string(n.Type)); !ok {
		return fmt.Errorf("%w: unknown notification type %q", ErrValidation, n.Type)
	}
	if _, ok := ParsePriority(string(n.Priority)); !ok {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, n.Priority)
	}
	for _, ch := range n.Channels {
		if _, ok := ParseChannel(string(ch)); !ok {
			return fmt.Errorf("%w: unknown channel %q", ErrValidation, ch)
		}
	}
	if n.RelatedEntity != nil {
		if _, ok := ParseRelatedEntityType(string(n.RelatedEntity.Type)); !ok {
			return fmt.Errorf("%w: unknown related entity type %q", ErrValidation, n.RelatedEntity.Type)
		}
		if n.RelatedEntity.ID.IsZero() {
			return fmt.Errorf("%w: related entity id is required", ErrValidation)
		}
	}
	return nil
}
