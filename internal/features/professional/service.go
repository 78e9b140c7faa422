package professional

import (
	"context"
	"fmt"

	"go-marketplace/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UpsertProfileRequest struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Profession  string  `json:"profession"`
	Bio         string  `json:"bio"`
	Location    string  `json:"location"`
	HourlyRate  float64 `json:"hourly_rate"`
}

type ProfessionalService interface {
	CreateProfile(ctx context.Context, req UpsertProfileRequest) (*Professional, error)
	GetProfile(ctx context.Context, id string) (*Professional, error)
	GetProfileByOwner(ctx context.Context, userID primitive.ObjectID) (*Professional, error)
	ListProfiles(ctx context.Context, page, limit int64) ([]Professional, int64, error)
	UpdateProfile(ctx context.Context, id string, actorID primitive.ObjectID, actorRole models.Role, req UpsertProfileRequest) (*Professional, error)
	DeleteProfile(ctx context.Context, id string) error
}

type ProfessionalServiceImpl struct {
	repo ProfessionalRepository
}

func NewProfessionalService(repo ProfessionalRepository) ProfessionalService {
	return &ProfessionalServiceImpl{
		repo: repo,
	}
}

func (s *ProfessionalServiceImpl) CreateProfile(ctx context.Context, req UpsertProfileRequest) (*Professional, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	if req.DisplayName == "" || req.Profession == "" {
		return nil, fmt.Errorf("%w: display name and profession are required", ErrValidation)
	}

	p := &Professional{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Profession:  req.Profession,
		Bio:         req.Bio,
		Location:    req.Location,
		HourlyRate:  req.HourlyRate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProfessionalServiceImpl) GetProfile(ctx context.Context, id string) (*Professional, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, objID)
}

func (s *ProfessionalServiceImpl) GetProfileByOwner(ctx context.Context, userID primitive.ObjectID) (*Professional, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *ProfessionalServiceImpl) ListProfiles(ctx context.Context, page, limit int64) ([]Professional, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *ProfessionalServiceImpl) UpdateProfile(ctx context.Context, id string, actorID primitive.ObjectID, actorRole models.Role, req UpsertProfileRequest) (*Professional, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	p, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && p.UserID != actorID {
		return nil, ErrForbidden
	}

	updates := bson.M{}
	if req.DisplayName != "" {
		updates["display_name"] = req.DisplayName
	}
	if req.Profession != "" {
		updates["profession"] = req.Profession
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.HourlyRate > 0 {
		updates["hourly_rate"] = req.HourlyRate
	}
	if len(updates) == 0 {
		return p, nil
	}

	if err := s.repo.Update(ctx, objID, updates); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, objID)
}

func (s *ProfessionalServiceImpl) DeleteProfile(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, objID)
}
