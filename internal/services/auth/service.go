package auth

import (
	"context"
	"errors"
	"time"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = time.Hour

type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUserTokenVersion(ctx context.Context, userID uint) (int, error)
}

type service struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
}

func NewService(userRepo repositories.UserRepository, resetRepo repositories.PasswordResetRepository) Service {
	if userRepo == nil {
		panic("user repo is required")
	}
	if resetRepo == nil {
		panic("reset repo is required")
	}
	return &service{userRepo: userRepo, resetRepo: resetRepo}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Info("login failed: user not found")
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("user_id", user.ID).Info("login failed: wrong password")
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		Role:         user.Role,
		Permissions:  models.GetDefaultPermissions(user.Role),
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to generate tokens")
		return nil, "", "", errors.New("error generating tokens")
	}

	user.LastLoginAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to record login time")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.GetByID(context.Background(), claims.UserID)
	if err != nil {
		return "", "", err
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token revoked")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		Role:         user.Role,
		Permissions:  models.GetDefaultPermissions(user.Role),
		TokenVersion: user.TokenVersion,
	})
}

// Logout bumps the token version so every outstanding token is invalidated.
func (s *service) Logout(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.TokenVersion++
	return s.userRepo.Update(user)
}

func (s *service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("incorrect password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashed)
	user.TokenVersion++ // invalidate existing tokens
	return s.userRepo.Update(user)
}

// RequestPasswordReset issues a single-use token. Delivery is out of scope
// for the API; in development the token is returned to the caller.
func (s *service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the address exists.
		logrus.WithField("email", email).Info("password reset requested for unknown email")
		return "", nil
	}

	token, err := utils.GenerateSecureCode()
	if err != nil {
		return "", err
	}
	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return "", err
	}
	return reset.Token, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if !reset.Usable(time.Now()) {
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.GetByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashed)
	user.TokenVersion++
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	now := time.Now()
	reset.UsedAt = &now
	return s.resetRepo.MarkUsed(ctx, reset)
}

func (s *service) GetUserTokenVersion(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}
