package booking

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingRejected:
		return BookingStatus(s), true
	}
	return "", false
}

// transitions is the full edge set of the booking lifecycle. Terminal states
// have no outgoing edges; a same-state re-apply is not an edge either.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

type Booking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID     primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	ProfessionalID primitive.ObjectID `bson:"professional_id" json:"professional_id"`
	Service        string             `bson:"service" json:"service"`
	ScheduledAt    time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status         BookingStatus      `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
