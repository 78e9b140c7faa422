package review

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/features/booking"
	"go-marketplace/internal/features/notification"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RatingUpdater receives the recomputed aggregate after every review
// mutation. The professional profile store satisfies it.
type RatingUpdater interface {
	UpdateRating(ctx context.Context, userID primitive.ObjectID, rating float64, count int64) error
}

type CreateReviewRequest struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type ReviewService interface {
	CreateReview(ctx context.Context, customerID primitive.ObjectID, req CreateReviewRequest) (*Review, error)
	ListForProfessional(ctx context.Context, professionalID string, page, limit int64) ([]Review, int64, error)
	DeleteReview(ctx context.Context, id string, actorID primitive.ObjectID, actorRole models.Role) error
}

type ReviewServiceImpl struct {
	repo          ReviewRepository
	bookings      booking.BookingRepository
	ratings       RatingUpdater
	notifications notification.NotificationService
	log           *zap.Logger
}

func NewReviewService(
	repo ReviewRepository,
	bookings booking.BookingRepository,
	ratings RatingUpdater,
	notifications notification.NotificationService,
	log *zap.Logger,
) ReviewService {
	return &ReviewServiceImpl{
		repo:          repo,
		bookings:      bookings,
		ratings:       ratings,
		notifications: notifications,
		log:           log,
	}
}

func (s *ReviewServiceImpl) CreateReview(ctx context.Context, customerID primitive.ObjectID, req CreateReviewRequest) (*Review, error) {
	bookingID, err := primitive.ObjectIDFromHex(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if utf8.RuneCountInString(req.Comment) > CommentMaxLen {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, CommentMaxLen)
	}

	b, err := s.bookings.FindByID(ctx, bookingID)
	if errors.Is(err, booking.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if b.Status != booking.BookingCompleted {
		return nil, ErrNotCompleted
	}
	if _, err := s.repo.FindByBooking(ctx, bookingID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rev := &Review{
		BookingID:      bookingID,
		CustomerID:     customerID,
		ProfessionalID: b.ProfessionalID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}

	s.recomputeRating(ctx, rev.ProfessionalID)

	if _, err := s.notifications.Dispatch(ctx, rev.ProfessionalID,
		"New review received",
		fmt.Sprintf("A customer rated your service %d out of 5.", rev.Rating),
		notification.NotificationTypeReview, &notification.DispatchOptions{
			RelatedEntity: &notification.RelatedEntity{
				Type: notification.RelatedEntityReview,
				ID:   rev.ID,
			},
			ActionURL:  "/bookings/" + bookingID.Hex(),
			ActionText: "View booking",
		}); err != nil {
		s.log.Warn("review notification dispatch failed",
			zap.String("reviewId", rev.ID.Hex()),
			zap.Error(err))
	}

	return rev, nil
}

func (s *ReviewServiceImpl) ListForProfessional(ctx context.Context, professionalID string, page, limit int64) ([]Review, int64, error) {
	objID, err := primitive.ObjectIDFromHex(professionalID)
	if err != nil {
		return nil, 0, ErrNotFound
	}
	return s.repo.ListByProfessional(ctx, objID, page, limit)
}

func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, id string, actorID primitive.ObjectID, actorRole models.Role) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	rev, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && rev.CustomerID != actorID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, objID); err != nil {
		return err
	}
	s.recomputeRating(ctx, rev.ProfessionalID)
	return nil
}

// recomputeRating rewrites the professional's cached aggregate. Failures are
// logged only; the review write already succeeded.
func (s *ReviewServiceImpl) recomputeRating(ctx context.Context, professionalID primitive.ObjectID) {
	avg, count, err := s.repo.AggregateForProfessional(ctx, professionalID)
	if err == nil {
		err = s.ratings.UpdateRating(ctx, professionalID, avg, count)
	}
	if err != nil {
		s.log.Warn("rating recompute failed",
			zap.String("professionalId", professionalID.Hex()),
			zap.Error(err))
	}
}
