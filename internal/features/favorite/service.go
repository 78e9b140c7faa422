package favorite

import (
	"context"
	"errors"

	"go-marketplace/internal/features/professional"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID primitive.ObjectID, professionalID string) error
	RemoveFavorite(ctx context.Context, userID primitive.ObjectID, professionalID string) error
	ListFavorites(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Favorite, int64, error)
	IsFavorite(ctx context.Context, userID primitive.ObjectID, professionalID string) (bool, error)
}

type FavoriteServiceImpl struct {
	repo          FavoriteRepository
	professionals professional.ProfessionalRepository
}

func NewFavoriteService(repo FavoriteRepository, professionals professional.ProfessionalRepository) FavoriteService {
	return &FavoriteServiceImpl{
		repo:          repo,
		professionals: professionals,
	}
}

func (s *FavoriteServiceImpl) AddFavorite(ctx context.Context, userID primitive.ObjectID, professionalID string) error {
	profID, err := primitive.ObjectIDFromHex(professionalID)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.professionals.FindByID(ctx, profID); err != nil {
		if errors.Is(err, professional.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Add(ctx, userID, profID)
}

func (s *FavoriteServiceImpl) RemoveFavorite(ctx context.Context, userID primitive.ObjectID, professionalID string) error {
	profID, err := primitive.ObjectIDFromHex(professionalID)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Remove(ctx, userID, profID)
}

func (s *FavoriteServiceImpl) ListFavorites(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Favorite, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, limit)
}

func (s *FavoriteServiceImpl) IsFavorite(ctx context.Context, userID primitive.ObjectID, professionalID string) (bool, error) {
	profID, err := primitive.ObjectIDFromHex(professionalID)
	if err != nil {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, profID)
}
