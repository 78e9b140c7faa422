package booking

import (
	"context"
	"fmt"
	"time"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/features/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CreateBookingRequest struct {
	ProfessionalID string    `json:"professional_id"`
	Service        string    `json:"service"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Notes          string    `json:"notes"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, customerID primitive.ObjectID, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id string, actor Actor) (*Booking, error)
	ListBookings(ctx context.Context, actor Actor, page, limit int64) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, actor Actor, newStatus string) (*Booking, error)
}

type BookingServiceImpl struct {
	repo          BookingRepository
	notifications notification.NotificationService
	log           *zap.Logger
}

func NewBookingService(repo BookingRepository, notifications notification.NotificationService, log *zap.Logger) BookingService {
	return &BookingServiceImpl{
		repo:          repo,
		notifications: notifications,
		log:           log,
	}
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, customerID primitive.ObjectID, req CreateBookingRequest) (*Booking, error) {
	professionalID, err := primitive.ObjectIDFromHex(req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid professional id", ErrValidation)
	}
	if req.Service == "" {
		return nil, fmt.Errorf("%w: service is required", ErrValidation)
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled time must be in the future", ErrValidation)
	}

	b := &Booking{
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Service:        req.Service,
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
		Status:         BookingPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// A fresh booking notifies the professional. Dispatch failure must never
	// fail the booking itself.
	s.dispatch(ctx, b, notice{
		Title:   "New booking request",
		Message: fmt.Sprintf("You have a new booking request for %q.", b.Service),
		Target:  b.ProfessionalID,
	})

	return b, nil
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, id string, actor Actor) (*Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	b, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleAdmin && actor.ID != b.CustomerID && actor.ID != b.ProfessionalID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *BookingServiceImpl) ListBookings(ctx context.Context, actor Actor, page, limit int64) ([]Booking, int64, error) {
	if actor.Role == models.RoleProfessional {
		return s.repo.ListByProfessional(ctx, actor.ID, page, limit)
	}
	return s.repo.ListByCustomer(ctx, actor.ID, page, limit)
}

// UpdateStatus applies one state-machine transition. Authorization is
// evaluated first, then topology, then a compare-and-swap write; every
// failure path leaves the booking untouched.
func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, id string, actor Actor, newStatus string) (*Booking, error) {
	to, ok := ParseBookingStatus(newStatus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	b, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, b, to); err != nil {
		return nil, err
	}
	if err := Validate(b.Status, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		return nil, err
	}
	b.Status = to
	b.UpdatedAt = time.Now()

	if n, ok := transitionNotice(b, to); ok {
		s.dispatch(ctx, b, n)
	}

	return b, nil
}

func (s *BookingServiceImpl) dispatch(ctx context.Context, b *Booking, n notice) {
	_, err := s.notifications.Dispatch(ctx, n.Target, n.Title, n.Message,
		notification.NotificationTypeBooking, &notification.DispatchOptions{
			RelatedEntity: &notification.RelatedEntity{
				Type: notification.RelatedEntityBooking,
				ID:   b.ID,
			},
			ActionURL:  "/bookings/" + b.ID.Hex(),
			ActionText: "View booking",
		})
	if err != nil {
		s.log.Warn("booking notification dispatch failed",
			zap.String("bookingId", b.ID.Hex()), zap.Error(err))
	}
}
