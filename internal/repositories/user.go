package repositories

import (
	"context"
	"errors"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user accounts.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(user *models.User) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewUserRepository(db *gorm.DB, cacheService *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cacheService}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if user, err := r.cache.GetUser(ctx, key); err == nil {
			return user, nil
		} else if err != cache.ErrCacheMiss {
			logrus.WithError(err).WithField("user_id", id).Warn("user cache read failed")
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	r.cacheAsync(&user)
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("user", "email", email)
		if user, err := r.cache.GetUser(ctx, key); err == nil {
			return user, nil
		} else if err != cache.ErrCacheMiss {
			logrus.WithError(err).WithField("email", email).Warn("user cache read failed")
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	r.cacheAsync(&user)
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return err
	}
	if r.cache != nil {
		if err := r.cache.InvalidateUser(context.Background(), user); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Warn("user cache invalidation failed")
		}
	}
	return nil
}

// cacheAsync updates the cache without blocking the request path.
func (r *userRepository) cacheAsync(user *models.User) {
	if r.cache == nil {
		return
	}
	u := *user
	go func() {
		if err := r.cache.CacheUser(context.Background(), &u); err != nil {
			logrus.WithError(err).WithField("user_id", u.ID).Warn("failed to cache user")
		}
	}()
}
