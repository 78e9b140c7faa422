package review

import (
	"context"
	"testing"
	"time"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/features/booking"
	"go-marketplace/internal/features/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rev *Review) error {
	args := m.Called(ctx, rev)
	if rev != nil && rev.ID.IsZero() {
		rev.ID = primitive.NewObjectID() // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockReviewRepository) FindByBooking(ctx context.Context, bookingID primitive.ObjectID) (*Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProfessional(ctx context.Context, professionalID primitive.ObjectID, page, limit int64) ([]Review, int64, error) {
	args := m.Called(ctx, professionalID, page, limit)
	return args.Get(0).([]Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) AggregateForProfessional(ctx context.Context, professionalID primitive.ObjectID) (float64, int64, error) {
	args := m.Called(ctx, professionalID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeBookingRepo serves a single booking by ID.
type fakeBookingRepo struct {
	booking.BookingRepository
	b *booking.Booking
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*booking.Booking, error) {
	if f.b != nil && f.b.ID == id {
		return f.b, nil
	}
	return nil, booking.ErrNotFound
}

// fakeRatings records aggregate updates.
type fakeRatings struct {
	userID primitive.ObjectID
	rating float64
	count  int64
	calls  int
}

func (f *fakeRatings) UpdateRating(ctx context.Context, userID primitive.ObjectID, rating float64, count int64) error {
	f.userID = userID
	f.rating = rating
	f.count = count
	f.calls++
	return nil
}

// fakeNotifier implements NotificationService recording dispatches only.
type fakeNotifier struct {
	dispatched []primitive.ObjectID
}

func (f *fakeNotifier) Dispatch(ctx context.Context, userID primitive.ObjectID, title, message string, notifType notification.NotificationType, opts *notification.DispatchOptions) (*notification.Notification, error) {
	f.dispatched = append(f.dispatched, userID)
	return &notification.Notification{}, nil
}

func (f *fakeNotifier) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, opts notification.ListOptions) ([]notification.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (f *fakeNotifier) MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	return nil
}
func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (f *fakeNotifier) ArchiveNotification(ctx context.Context, id string, userID primitive.ObjectID) error {
	return nil
}
func (f *fakeNotifier) ArchiveAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (f *fakeNotifier) DeleteNotification(ctx context.Context, id string, userID primitive.ObjectID) error {
	return nil
}
func (f *fakeNotifier) DeliverDueScheduled(ctx context.Context) (int, error) { return 0, nil }
func (f *fakeNotifier) PurgeArchived(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

func completedBooking(customerID, professionalID primitive.ObjectID) *booking.Booking {
	return &booking.Booking{
		ID:             primitive.NewObjectID(),
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Service:        "Garden cleanup",
		Status:         booking.BookingCompleted,
	}
}

func TestCreateReview(t *testing.T) {
	customerID := primitive.NewObjectID()
	professionalID := primitive.NewObjectID()
	b := completedBooking(customerID, professionalID)

	repo := new(MockReviewRepository)
	ratings := &fakeRatings{}
	notifier := &fakeNotifier{}
	svc := NewReviewService(repo, &fakeBookingRepo{b: b}, ratings, notifier, zap.NewNop())

	repo.On("FindByBooking", mock.Anything, b.ID).Return(nil, ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("AggregateForProfessional", mock.Anything, professionalID).Return(4.5, int64(2), nil)

	rev, err := svc.CreateReview(context.Background(), customerID, CreateReviewRequest{
		BookingID: b.ID.Hex(),
		Rating:    5,
		Comment:   "Great work",
	})

	assert.NoError(t, err)
	assert.Equal(t, professionalID, rev.ProfessionalID)
	assert.Equal(t, 4.5, ratings.rating)
	assert.Equal(t, int64(2), ratings.count)
	assert.Equal(t, []primitive.ObjectID{professionalID}, notifier.dispatched)
	repo.AssertExpectations(t)
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	customerID := primitive.NewObjectID()
	b := completedBooking(customerID, primitive.NewObjectID())
	b.Status = booking.BookingConfirmed

	svc := NewReviewService(new(MockReviewRepository), &fakeBookingRepo{b: b},
		&fakeRatings{}, &fakeNotifier{}, zap.NewNop())

	_, err := svc.CreateReview(context.Background(), customerID, CreateReviewRequest{
		BookingID: b.ID.Hex(),
		Rating:    4,
	})

	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestCreateReviewOnlyByBookingCustomer(t *testing.T) {
	b := completedBooking(primitive.NewObjectID(), primitive.NewObjectID())

	svc := NewReviewService(new(MockReviewRepository), &fakeBookingRepo{b: b},
		&fakeRatings{}, &fakeNotifier{}, zap.NewNop())

	_, err := svc.CreateReview(context.Background(), primitive.NewObjectID(), CreateReviewRequest{
		BookingID: b.ID.Hex(),
		Rating:    4,
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	customerID := primitive.NewObjectID()
	b := completedBooking(customerID, primitive.NewObjectID())

	repo := new(MockReviewRepository)
	repo.On("FindByBooking", mock.Anything, b.ID).Return(&Review{}, nil)

	svc := NewReviewService(repo, &fakeBookingRepo{b: b},
		&fakeRatings{}, &fakeNotifier{}, zap.NewNop())

	_, err := svc.CreateReview(context.Background(), customerID, CreateReviewRequest{
		BookingID: b.ID.Hex(),
		Rating:    4,
	})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc := NewReviewService(new(MockReviewRepository), &fakeBookingRepo{},
		&fakeRatings{}, &fakeNotifier{}, zap.NewNop())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), primitive.NewObjectID(), CreateReviewRequest{
			BookingID: primitive.NewObjectID().Hex(),
			Rating:    rating,
		})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	customerID := primitive.NewObjectID()
	professionalID := primitive.NewObjectID()
	rev := &Review{
		ID:             primitive.NewObjectID(),
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Rating:         5,
	}

	repo := new(MockReviewRepository)
	ratings := &fakeRatings{}
	svc := NewReviewService(repo, &fakeBookingRepo{}, ratings, &fakeNotifier{}, zap.NewNop())

	repo.On("FindByID", mock.Anything, rev.ID).Return(rev, nil)
	repo.On("Delete", mock.Anything, rev.ID).Return(nil)
	repo.On("AggregateForProfessional", mock.Anything, professionalID).Return(0.0, int64(0), nil)

	err := svc.DeleteReview(context.Background(), rev.ID.Hex(), customerID, models.RoleCustomer)

	assert.NoError(t, err)
	assert.Equal(t, 1, ratings.calls)
	assert.Equal(t, int64(0), ratings.count)
}

func TestDeleteReviewForbiddenForOthers(t *testing.T) {
	rev := &Review{
		ID:             primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		ProfessionalID: primitive.NewObjectID(),
	}

	repo := new(MockReviewRepository)
	repo.On("FindByID", mock.Anything, rev.ID).Return(rev, nil)
	repo.On("Delete", mock.Anything, rev.ID).Return(nil)
	repo.On("AggregateForProfessional", mock.Anything, rev.ProfessionalID).Return(0.0, int64(0), nil)

	svc := NewReviewService(repo, &fakeBookingRepo{}, &fakeRatings{}, &fakeNotifier{}, zap.NewNop())

	err := svc.DeleteReview(context.Background(), rev.ID.Hex(), primitive.NewObjectID(), models.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	err = svc.DeleteReview(context.Background(), rev.ID.Hex(), primitive.NewObjectID(), models.RoleAdmin)
	assert.NoError(t, err)
}
