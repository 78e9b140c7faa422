package favorite

import (
	"context"
	"testing"

	"go-marketplace/internal/features/professional"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, professionalID primitive.ObjectID) error {
	args := m.Called(ctx, userID, professionalID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, professionalID primitive.ObjectID) error {
	args := m.Called(ctx, userID, professionalID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Favorite, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]Favorite), args.Get(1).(int64), args.Error(2)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, professionalID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, professionalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeProfessionalRepo serves one profile by its id.
type fakeProfessionalRepo struct {
	professional.ProfessionalRepository
	profile *professional.Professional
}

func (f *fakeProfessionalRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*professional.Professional, error) {
	if f.profile != nil && f.profile.ID == id {
		return f.profile, nil
	}
	return nil, professional.ErrNotFound
}

func TestAddFavoriteRequiresExistingProfessional(t *testing.T) {
	repo := new(MockFavoriteRepository)
	profile := &professional.Professional{ID: primitive.NewObjectID()}
	svc := NewFavoriteService(repo, &fakeProfessionalRepo{profile: profile})

	userID := primitive.NewObjectID()
	repo.On("Add", mock.Anything, userID, profile.ID).Return(nil)

	err := svc.AddFavorite(context.Background(), userID, profile.ID.Hex())
	assert.NoError(t, err)
	repo.AssertExpectations(t)

	err = svc.AddFavorite(context.Background(), userID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.AddFavorite(context.Background(), userID, "not-a-hex")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsFavorite(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewFavoriteService(repo, &fakeProfessionalRepo{})

	userID := primitive.NewObjectID()
	profID := primitive.NewObjectID()

	repo.On("Exists", mock.Anything, userID, profID).Return(true, nil)

	favorite, err := svc.IsFavorite(context.Background(), userID, profID.Hex())
	assert.NoError(t, err)
	assert.True(t, favorite)

	// A malformed id cannot be anyone's favorite
	favorite, err = svc.IsFavorite(context.Background(), userID, "zzz")
	assert.NoError(t, err)
	assert.False(t, favorite)
}

func TestRemoveFavorite(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewFavoriteService(repo, &fakeProfessionalRepo{})

	userID := primitive.NewObjectID()
	profID := primitive.NewObjectID()

	repo.On("Remove", mock.Anything, userID, profID).Return(ErrNotFound)

	err := svc.RemoveFavorite(context.Background(), userID, profID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
