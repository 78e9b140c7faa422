package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validNotification() *Notification {
	return &Notification{
		UserID:         primitive.NewObjectID(),
		Title:          "Booking confirmed",
		Message:        "Your booking has been confirmed.",
		Type:           NotificationTypeBooking,
		Priority:       PriorityMedium,
		Channels:       []Channel{ChannelInApp},
		DeliveryStatus: DeliveryStatusPending,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validNotification().Validate())

	n := validNotification()
	n.UserID = primitive.NilObjectID
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.Title = ""
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.Title = strings.Repeat("x", TitleMaxLen+1)
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	// limits count characters, not bytes
	n = validNotification()
	n.Title = strings.Repeat("é", TitleMaxLen)
	assert.NoError(t, n.Validate())

	n = validNotification()
	n.Title = strings.Repeat("é", TitleMaxLen+1)
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.Message = strings.Repeat("x", MessageMaxLen+1)
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.Message = strings.Repeat("й", MessageMaxLen)
	assert.NoError(t, n.Validate())

	n = validNotification()
	n.Type = "broadcast"
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.Priority = "critical"
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.Channels = []Channel{"pigeon"}
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.RelatedEntity = &RelatedEntity{Type: RelatedEntityBooking}
	assert.ErrorIs(t, n.Validate(), ErrValidation)

	n = validNotification()
	n.RelatedEntity = &RelatedEntity{Type: RelatedEntityBooking, ID: primitive.NewObjectID()}
	assert.NoError(t, n.Validate())
}

func TestSendable(t *testing.T) {
	n := validNotification()
	assert.True(t, n.Sendable())

	future := time.Now().Add(time.Hour)
	n.ScheduledFor = &future
	assert.False(t, n.Sendable())

	past := time.Now().Add(-time.Hour)
	n.ScheduledFor = &past
	assert.True(t, n.Sendable())

	n = validNotification()
	n.DeliveryStatus = DeliveryStatusSent
	assert.False(t, n.Sendable())
}

func TestParseFunctions(t *testing.T) {
	_, ok := ParseNotificationType("booking")
	assert.True(t, ok)
	_, ok = ParseNotificationType("bulletin")
	assert.False(t, ok)

	_, ok = ParsePriority("urgent")
	assert.True(t, ok)
	_, ok = ParsePriority("")
	assert.False(t, ok)

	_, ok = ParseChannel("in-app")
	assert.True(t, ok)
	_, ok = ParseChannel("sms ")
	assert.False(t, ok)
}
