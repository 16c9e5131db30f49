package repositories

import (
	"context"
	"errors"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RedemptionStore is the write surface used by the redemption orchestrator.
// All mutations of a redemption run through one store so they can be issued
// inside a single database transaction.
type RedemptionStore interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	SaveUserPoints(ctx context.Context, id uint, currentPoint, totalPoint int) error
	GetVoucher(ctx context.Context, id uint) (*models.Voucher, error)
	AppendVoucherUse(ctx context.Context, voucherID uint, customerID string) error
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// InTransaction runs fn against a store bound to a database transaction.
	// fn returning an error rolls back every step.
	InTransaction(ctx context.Context, fn func(RedemptionStore) error) error

	// Cache invalidation for rows mutated inside a redemption. Called after
	// the transaction commits; invalidating earlier would let a concurrent
	// read re-fill the cache with the pre-commit values.
	InvalidateUser(ctx context.Context, user *models.User)
	InvalidateSellerVouchers(ctx context.Context, sellerID uint)
}

type redemptionStore struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewRedemptionStore(db *gorm.DB, cacheService *cache.CacheService) RedemptionStore {
	return &redemptionStore{db: db, cache: cacheService}
}

func (s *redemptionStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *redemptionStore) SaveUserPoints(ctx context.Context, id uint, currentPoint, totalPoint int) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_point": currentPoint,
			"total_point":   totalPoint,
		}).Error
}

func (s *redemptionStore) GetVoucher(ctx context.Context, id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

func (s *redemptionStore) AppendVoucherUse(ctx context.Context, voucherID uint, customerID string) error {
	return s.db.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("id = ?", voucherID).
		Update("used_by", gorm.Expr("array_append(used_by, ?)", customerID)).Error
}

func (s *redemptionStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.db.WithContext(ctx).Create(tx).Error
}

func (s *redemptionStore) InTransaction(ctx context.Context, fn func(RedemptionStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&redemptionStore{db: tx, cache: s.cache})
	})
}

func (s *redemptionStore) InvalidateUser(ctx context.Context, user *models.User) {
	if s.cache == nil || user == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("user cache invalidation failed")
	}
}

func (s *redemptionStore) InvalidateSellerVouchers(ctx context.Context, sellerID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSellerVouchers(ctx, sellerID); err != nil {
		logrus.WithError(err).WithField("seller_id", sellerID).Warn("voucher cache invalidation failed")
	}
}
