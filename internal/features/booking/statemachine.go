package booking

import (
	"fmt"

	"go-marketplace/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is whoever attempts a transition, resolved from the request token.
type Actor struct {
	ID   primitive.ObjectID
	Role models.Role
}

// Authorize checks the per-role transition matrix. It is evaluated before
// the topology check, so a customer poking at pending→confirmed gets a
// forbidden error, not an invalid-state one.
func Authorize(actor Actor, b *Booking, to BookingStatus) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}

	from := b.Status
	if actor.ID == b.ProfessionalID {
		if (from == BookingPending && (to == BookingConfirmed || to == BookingRejected)) ||
			(from == BookingConfirmed && to == BookingCompleted) {
			return nil
		}
		return ErrForbidden
	}
	if actor.ID == b.CustomerID {
		if (from == BookingPending || from == BookingConfirmed) && to == BookingCancelled {
			return nil
		}
		return ErrForbidden
	}
	return ErrForbidden
}

// Validate checks the transition against the lifecycle topology. Terminal
// states and same-state re-applies are both rejected here, never silently
// accepted, so a retried request can never double-notify.
func Validate(from, to BookingStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// notice is the (title, message, target) triple dispatched after a
// successful transition.
type notice struct {
	Title   string
	Message string
	Target  primitive.ObjectID
}

// transitionNotice computes the notification for the new status. The
// counterpart customer is notified of every transition the professional or
// admin applies; booking creation notifies the professional (see service).
func transitionNotice(b *Booking, to BookingStatus) (notice, bool) {
	switch to {
	case BookingConfirmed:
		return notice{
			Title:   "Booking confirmed",
			Message: fmt.Sprintf("Your booking for %q has been confirmed.", b.Service),
			Target:  b.CustomerID,
		}, true
	case BookingCompleted:
		return notice{
			Title:   "Booking completed",
			Message: fmt.Sprintf("Your booking for %q has been marked as completed.", b.Service),
			Target:  b.CustomerID,
		}, true
	case BookingCancelled:
		return notice{
			Title:   "Booking cancelled",
			Message: fmt.Sprintf("Your booking for %q has been cancelled.", b.Service),
			Target:  b.CustomerID,
		}, true
	case BookingRejected:
		return notice{
			Title:   "Booking rejected",
			Message: fmt.Sprintf("Your booking request for %q was declined.", b.Service),
			Target:  b.CustomerID,
		}, true
	}
	return notice{}, false
}
