package booking

import (
	"context"
	"testing"
	"time"

	"go-marketplace/internal/common/models"
	"go-marketplace/internal/features/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID.IsZero() {
		b.ID = primitive.NewObjectID() // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID, page, limit int64) ([]Booking, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListByProfessional(ctx context.Context, professionalID primitive.ObjectID, page, limit int64) ([]Booking, int64, error) {
	args := m.Called(ctx, professionalID, page, limit)
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockBookingRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, userID primitive.ObjectID, title, message string, notifType notification.NotificationType, opts *notification.DispatchOptions) (*notification.Notification, error) {
	args := m.Called(ctx, userID, title, message, notifType, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, opts notification.ListOptions) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, userID, opts)
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationService) GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) ArchiveNotification(ctx context.Context, id string, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationService) ArchiveAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) DeleteNotification(ctx context.Context, id string, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationService) DeliverDueScheduled(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) PurgeArchived(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo *MockBookingRepository, notif *MockNotificationService) BookingService {
	return NewBookingService(repo, notif, zap.NewNop())
}

func TestCreateBookingNotifiesProfessional(t *testing.T) {
	repo := new(MockBookingRepository)
	notif := new(MockNotificationService)
	svc := newTestService(repo, notif)

	customerID := primitive.NewObjectID()
	professionalID := primitive.NewObjectID()

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notif.On("Dispatch", mock.Anything, professionalID, "New booking request", mock.Anything,
		notification.NotificationTypeBooking, mock.Anything).Return(&notification.Notification{}, nil)

	b, err := svc.CreateBooking(context.Background(), customerID, CreateBookingRequest{
		ProfessionalID: professionalID.Hex(),
		Service:        "Pipe repair",
		ScheduledAt:    time.Now().Add(24 * time.Hour),
	})

	assert.NoError(t, err)
	assert.Equal(t, BookingPending, b.Status)
	repo.AssertExpectations(t)
	notif.AssertExpectations(t)
}

func TestCreateBookingSurvivesDispatchFailure(t *testing.T) {
	repo := new(MockBookingRepository)
	notif := new(MockNotificationService)
	svc := newTestService(repo, notif)

	professionalID := primitive.NewObjectID()

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notif.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil, assert.AnError)

	b, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), CreateBookingRequest{
		ProfessionalID: professionalID.Hex(),
		Service:        "Pipe repair",
		ScheduledAt:    time.Now().Add(time.Hour),
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockNotificationService))

	_, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), CreateBookingRequest{
		ProfessionalID: "not-a-hex",
		Service:        "Cleaning",
		ScheduledAt:    time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBooking(context.Background(), primitive.NewObjectID(), CreateBookingRequest{
		ProfessionalID: primitive.NewObjectID().Hex(),
		ScheduledAt:    time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBooking(context.Background(), primitive.NewObjectID(), CreateBookingRequest{
		ProfessionalID: primitive.NewObjectID().Hex(),
		Service:        "Cleaning",
		ScheduledAt:    time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusConfirmNotifiesCustomer(t *testing.T) {
	repo := new(MockBookingRepository)
	notif := new(MockNotificationService)
	svc := newTestService(repo, notif)

	customerID := primitive.NewObjectID()
	professionalID := primitive.NewObjectID()
	b := &Booking{
		ID:             primitive.NewObjectID(),
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Service:        "Wiring",
		Status:         BookingPending,
	}

	repo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	repo.On("UpdateStatus", mock.Anything, b.ID, BookingPending, BookingConfirmed).Return(nil)
	notif.On("Dispatch", mock.Anything, customerID, "Booking confirmed", mock.Anything,
		notification.NotificationTypeBooking, mock.Anything).Return(&notification.Notification{}, nil)

	actor := Actor{ID: professionalID, Role: models.RoleProfessional}
	updated, err := svc.UpdateStatus(context.Background(), b.ID.Hex(), actor, "confirmed")

	assert.NoError(t, err)
	assert.Equal(t, BookingConfirmed, updated.Status)
	repo.AssertExpectations(t)
	notif.AssertExpectations(t)
}

func TestUpdateStatusForbiddenBeforeTopology(t *testing.T) {
	repo := new(MockBookingRepository)
	notif := new(MockNotificationService)
	svc := newTestService(repo, notif)

	b := &Booking{
		ID:             primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		ProfessionalID: primitive.NewObjectID(),
		Status:         BookingPending,
	}
	repo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

	// A customer asking for confirmed fails authorization, not topology,
	// even though pending->confirmed is a legal edge.
	actor := Actor{ID: b.CustomerID, Role: models.RoleCustomer}
	_, err := svc.UpdateStatus(context.Background(), b.ID.Hex(), actor, "confirmed")

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notif.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusTerminalState(t *testing.T) {
	repo := new(MockBookingRepository)
	notif := new(MockNotificationService)
	svc := newTestService(repo, notif)

	b := &Booking{
		ID:             primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		ProfessionalID: primitive.NewObjectID(),
		Status:         BookingCancelled,
	}
	repo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

	actor := Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	_, err := svc.UpdateStatus(context.Background(), b.ID.Hex(), actor, "confirmed")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockNotificationService))

	actor := Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), actor, "done")

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusConflictSurfaces(t *testing.T) {
	repo := new(MockBookingRepository)
	notif := new(MockNotificationService)
	svc := newTestService(repo, notif)

	b := &Booking{
		ID:             primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		ProfessionalID: primitive.NewObjectID(),
		Status:         BookingPending,
	}
	repo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	repo.On("UpdateStatus", mock.Anything, b.ID, BookingPending, BookingConfirmed).Return(ErrConflict)

	actor := Actor{ID: b.ProfessionalID, Role: models.RoleProfessional}
	_, err := svc.UpdateStatus(context.Background(), b.ID.Hex(), actor, "confirmed")

	assert.ErrorIs(t, err, ErrConflict)
	notif.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBookingHidesFromStrangers(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := newTestService(repo, new(MockNotificationService))

	b := &Booking{
		ID:             primitive.NewObjectID(),
		CustomerID:     primitive.NewObjectID(),
		ProfessionalID: primitive.NewObjectID(),
		Status:         BookingPending,
	}
	repo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

	stranger := Actor{ID: primitive.NewObjectID(), Role: models.RoleCustomer}
	_, err := svc.GetBooking(context.Background(), b.ID.Hex(), stranger)
	assert.ErrorIs(t, err, ErrNotFound)

	participant := Actor{ID: b.CustomerID, Role: models.RoleCustomer}
	got, err := svc.GetBooking(context.Background(), b.ID.Hex(), participant)
	assert.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}
