package transaction

import (
	"context"
	"fmt"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/utils"
)

// Service exposes the activity views built on the transaction log.
type Service interface {
	CustomerHistory(ctx context.Context, customerID uint, limit, offset int) (*Activity, error)
	SellerHistory(ctx context.Context, sellerID uint, limit, offset int) (*Activity, error)
}

// Activity is a page of history plus the exact total over the whole log.
type Activity struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int64                `json:"count"`
	TotalAmount  float64              `json:"total_amount"`
}

type service struct {
	repo repositories.TransactionRepository
}

// NewService creates a new transaction service.
func NewService(repo repositories.TransactionRepository) Service {
	if repo == nil {
		panic("transaction repo is required")
	}
	return &service{repo: repo}
}

func (s *service) CustomerHistory(ctx context.Context, customerID uint, limit, offset int) (*Activity, error) {
	txs, count, err := s.repo.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer transactions: %w", err)
	}

	// Totals cover the full history, not just the requested page.
	all := txs
	if limit > 0 {
		if all, _, err = s.repo.ListByCustomer(ctx, customerID, 0, 0); err != nil {
			return nil, fmt.Errorf("failed to total customer transactions: %w", err)
		}
	}

	return &Activity{Transactions: txs, Count: count, TotalAmount: SumAmounts(all)}, nil
}

func (s *service) SellerHistory(ctx context.Context, sellerID uint, limit, offset int) (*Activity, error) {
	txs, count, err := s.repo.ListBySeller(ctx, sellerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller transactions: %w", err)
	}

	all := txs
	if limit > 0 {
		if all, _, err = s.repo.ListBySeller(ctx, sellerID, 0, 0); err != nil {
			return nil, fmt.Errorf("failed to total seller transactions: %w", err)
		}
	}

	return &Activity{Transactions: txs, Count: count, TotalAmount: SumAmounts(all)}, nil
}

// SumAmounts totals amountPaid over a list of transactions. The running sum
// stays exact; only the final figure is rounded to 2 decimal places.
func SumAmounts(txs []models.Transaction) float64 {
	var sum float64
	for _, tx := range txs {
		sum += tx.AmountPaid
	}
	return utils.Round2(sum)
}
