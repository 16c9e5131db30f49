package repositories

import (
	"context"
	"errors"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrVoucherNotFound = errors.New("voucher not found")

// VoucherRepository provides access to seller vouchers.
type VoucherRepository interface {
	Create(voucher *models.Voucher) error
	GetByID(ctx context.Context, id uint) (*models.Voucher, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Voucher, error)
	ListAll(ctx context.Context) ([]models.Voucher, error)
	Delete(ctx context.Context, id uint) error
}

type voucherRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewVoucherRepository(db *gorm.DB, cacheService *cache.CacheService) VoucherRepository {
	return &voucherRepository{db: db, cache: cacheService}
}

func (r *voucherRepository) Create(voucher *models.Voucher) error {
	if err := r.db.Create(voucher).Error; err != nil {
		return err
	}
	r.invalidate(voucher.SellerID)
	return nil
}

func (r *voucherRepository) GetByID(ctx context.Context, id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Voucher, error) {
	if r.cache != nil {
		if vouchers, err := r.cache.GetSellerVouchers(ctx, sellerID); err == nil {
			return vouchers, nil
		} else if err != cache.ErrCacheMiss {
			logrus.WithError(err).WithField("seller_id", sellerID).Warn("voucher cache read failed")
		}
	}

	var vouchers []models.Voucher
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&vouchers).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.CacheSellerVouchers(ctx, sellerID, vouchers); err != nil {
			logrus.WithError(err).WithField("seller_id", sellerID).Warn("failed to cache vouchers")
		}
	}
	return vouchers, nil
}

func (r *voucherRepository) ListAll(ctx context.Context) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&vouchers).Error
	return vouchers, err
}

func (r *voucherRepository) Delete(ctx context.Context, id uint) error {
	voucher, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Voucher{}, id).Error; err != nil {
		return err
	}
	r.invalidate(voucher.SellerID)
	return nil
}

func (r *voucherRepository) invalidate(sellerID uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateSellerVouchers(context.Background(), sellerID); err != nil {
		logrus.WithError(err).WithField("seller_id", sellerID).Warn("voucher cache invalidation failed")
	}
}
