package transaction

import (
	"context"
	"testing"

	"nushoplah/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) ListByCustomer(ctx context.Context, customerID uint, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepo) ListBySeller(ctx context.Context, sellerID uint, limit, offset int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, sellerID, limit, offset)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func TestSumAmounts(t *testing.T) {
	txs := []models.Transaction{
		{AmountPaid: 9.99},
		{AmountPaid: 7.25},
		{AmountPaid: 13.8},
	}
	assert.Equal(t, 31.04, SumAmounts(txs))
	assert.Equal(t, 0.0, SumAmounts(nil))
}

func TestSumAmounts_RoundsOnlyFinalSum(t *testing.T) {
	// Each amount carries a third decimal that would be lost if rounded
	// per item; the exact sum is 0.30.
	txs := []models.Transaction{
		{AmountPaid: 0.101},
		{AmountPaid: 0.101},
		{AmountPaid: 0.098},
	}
	assert.Equal(t, 0.30, SumAmounts(txs))
}

func TestCustomerHistory(t *testing.T) {
	repo := new(MockTransactionRepo)
	txs := []models.Transaction{
		{CustomerID: 1, AmountPaid: 12.50},
		{CustomerID: 1, AmountPaid: 7.50},
	}
	repo.On("ListByCustomer", mock.Anything, uint(1), 0, 0).Return(txs, int64(2), nil)

	svc := NewService(repo)
	activity, err := svc.CustomerHistory(context.Background(), 1, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), activity.Count)
	assert.Equal(t, 20.00, activity.TotalAmount)
	assert.Len(t, activity.Transactions, 2)
	repo.AssertExpectations(t)
}

func TestSellerHistory_TotalsCoverFullLog(t *testing.T) {
	repo := new(MockTransactionRepo)
	page := []models.Transaction{{SellerID: 3, AmountPaid: 5}}
	all := []models.Transaction{
		{SellerID: 3, AmountPaid: 5},
		{SellerID: 3, AmountPaid: 10},
		{SellerID: 3, AmountPaid: 2.04},
	}
	repo.On("ListBySeller", mock.Anything, uint(3), 1, 0).Return(page, int64(3), nil)
	repo.On("ListBySeller", mock.Anything, uint(3), 0, 0).Return(all, int64(3), nil)

	svc := NewService(repo)
	activity, err := svc.SellerHistory(context.Background(), 3, 1, 0)
	require.NoError(t, err)

	assert.Len(t, activity.Transactions, 1)
	assert.Equal(t, 17.04, activity.TotalAmount)
	repo.AssertExpectations(t)
}
