package repositories

import (
	"context"

	"nushoplah/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository provides read access to the immutable transaction
// log. Writes happen only through the redemption store.
type TransactionRepository interface {
	ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Transaction, int64, error)
	ListBySeller(ctx context.Context, sellerID uint, limit, offset int) ([]models.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Transaction, int64, error) {
	return r.list(ctx, "customer_id = ?", customerID, limit, offset)
}

func (r *transactionRepository) ListBySeller(ctx context.Context, sellerID uint, limit, offset int) ([]models.Transaction, int64, error) {
	return r.list(ctx, "seller_id = ?", sellerID, limit, offset)
}

func (r *transactionRepository) list(ctx context.Context, cond string, id uint, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where(cond, id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.Transaction
	q := r.db.WithContext(ctx).Where(cond, id).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
