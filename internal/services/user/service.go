package user

import (
	"context"
	"errors"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/services/loyalty"
	"nushoplah/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("user with this email already exists")

// Account is the profile projection served to the settings screen. Tier and
// progress are derived from the lifetime balance.
type Account struct {
	ID               uint         `json:"id"`
	Email            string       `json:"email"`
	FirstName        string       `json:"first_name"`
	Role             string       `json:"role"`
	CurrentPoint     int          `json:"current_point"`
	TotalPoint       int          `json:"total_point"`
	Tier             loyalty.Tier `json:"tier"`
	PointsToNextTier int          `json:"points_to_next_tier"`
}

type Service interface {
	Create(input *models.CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Profile(ctx context.Context, id uint) (*Account, error)
	IdentityPayload(ctx context.Context, id uint) (*models.IdentityPayload, error)
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	if repo == nil {
		panic("user repo is required")
	}
	return &service{repo: repo}
}

func (s *service) Create(input *models.CreateUserInput) (*models.User, error) {
	if err := validation.ValidateRegistration(input); err != nil {
		return nil, err
	}

	if existing, _ := s.repo.GetByEmail(context.Background(), input.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Email:     input.Email,
		Password:  string(hashed),
		FirstName: input.FirstName,
		Role:      input.Role,
		Status:    "active",
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Profile(ctx context.Context, id uint) (*Account, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		Role:             user.Role,
		CurrentPoint:     user.CurrentPoint,
		TotalPoint:       user.TotalPoint,
		Tier:             loyalty.TierFor(user.TotalPoint),
		PointsToNextTier: loyalty.PointsToNextTier(user.TotalPoint),
	}, nil
}

// IdentityPayload assembles the JSON document the customer's identity
// screen renders into a QR code.
func (s *service) IdentityPayload(ctx context.Context, id uint) (*models.IdentityPayload, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.IdentityPayload{
		UID:          user.ID,
		FirstName:    user.FirstName,
		CurrentPoint: user.CurrentPoint,
		TotalPoint:   user.TotalPoint,
		AmountPaid:   0,
		IsVoucher:    false,
	}, nil
}
