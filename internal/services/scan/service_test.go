package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "nushoplah/internal/errors"
	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) SaveUserPoints(ctx context.Context, id uint, currentPoint, totalPoint int) error {
	args := m.Called(ctx, id, currentPoint, totalPoint)
	return args.Error(0)
}

func (m *MockStore) GetVoucher(ctx context.Context, id uint) (*models.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Voucher), args.Error(1)
}

func (m *MockStore) AppendVoucherUse(ctx context.Context, voucherID uint, customerID string) error {
	args := m.Called(ctx, voucherID, customerID)
	return args.Error(0)
}

func (m *MockStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStore) InTransaction(ctx context.Context, fn func(repositories.RedemptionStore) error) error {
	m.Called(ctx)
	return fn(m)
}

func (m *MockStore) InvalidateUser(ctx context.Context, user *models.User) {
	m.Called(ctx, user)
}

func (m *MockStore) InvalidateSellerVouchers(ctx context.Context, sellerID uint) {
	m.Called(ctx, sellerID)
}

func newTestService(store repositories.RedemptionStore, cfg Config) (Service, *stream.Broker) {
	broker := stream.NewBroker()
	return NewService(store, broker, cfg), broker
}

func seller() *models.User {
	s := &models.User{FirstName: "Kopi Corner", Role: models.RoleSeller}
	s.ID = 7
	return s
}

func customer(current, total int) *models.User {
	c := &models.User{FirstName: "Wei Ling", Role: models.RoleCustomer, CurrentPoint: current, TotalPoint: total}
	c.ID = 12
	return c
}

func TestAwardPoints_SilverCustomer(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(600, 600), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 663, 663).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Type == models.TransactionTypePoints &&
			tx.PointsAwarded == 63 &&
			tx.AmountPaid == 50.0 &&
			tx.CustomerID == 12 && tx.SellerID == 7
	})).Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.Anything).Return()

	result, err := svc.AwardPoints(context.Background(), seller(), &models.IdentityPayload{UID: 12}, 50)
	require.NoError(t, err)

	assert.Equal(t, 600, result.PreviousCurrentPoint)
	assert.Equal(t, 663, result.NewCurrentPoint)
	assert.Equal(t, 663, result.NewTotalPoint)
	require.NotNil(t, result.Transaction)
	store.AssertExpectations(t)
}

func TestAwardPoints_BalancesTieredIndependently(t *testing.T) {
	// Spendable balance in Member tier, lifetime balance in Gold tier.
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(100, 2000), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 200, 2150).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.Anything).Return()

	result, err := svc.AwardPoints(context.Background(), seller(), &models.IdentityPayload{UID: 12}, 100)
	require.NoError(t, err)

	assert.Equal(t, 200, result.NewCurrentPoint)  // x1.0
	assert.Equal(t, 2150, result.NewTotalPoint)   // x1.5
	assert.Equal(t, 100, result.Transaction.PointsAwarded)
}

func TestAwardPoints_NegativeAmountRejectedBeforeAnyCall(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	_, err := svc.AwardPoints(context.Background(), seller(), &models.IdentityPayload{UID: 12}, -5)
	assert.ErrorIs(t, err, domainErrors.ErrNegativePoints)
	store.AssertNotCalled(t, "InTransaction", mock.Anything)
}

func TestAwardPoints_WriteFailureRollsBack(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(0, 0), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 10, 10).Return(errors.New("connection reset"))

	result, err := svc.AwardPoints(context.Background(), seller(), &models.IdentityPayload{UID: 12}, 10)
	assert.ErrorIs(t, err, domainErrors.ErrRemoteWriteFailure)
	store.AssertNotCalled(t, "InvalidateUser", mock.Anything, mock.Anything)

	require.Len(t, result.Steps, 2)
	assert.Equal(t, StepBalanceRead, result.Steps[0].Name)
	assert.Equal(t, "ok", result.Steps[0].Status)
	assert.Equal(t, StepBalanceWrite, result.Steps[1].Name)
	assert.Equal(t, "failed", result.Steps[1].Status)
	store.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestAwardPoints_DropsCachedBalancesAfterCommit(t *testing.T) {
	// The profile read path prefers the user cache; a committed balance
	// write must drop the cached copy or the old balance keeps being served.
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(600, 600), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 663, 663).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 12
	})).Return()

	_, err := svc.AwardPoints(context.Background(), seller(), &models.IdentityPayload{UID: 12}, 50)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func voucherFixture() *models.Voucher {
	v := &models.Voucher{
		SellerID:       7,
		SellerName:     "Kopi Corner",
		Type:           models.VoucherTypeDollar,
		Amount:         30,
		PointsRequired: 100,
		Description:    "$30 off",
	}
	v.ID = 4
	return v
}

func voucherPayload() *models.VoucherPayload {
	return &models.VoucherPayload{
		VoucherID:  4,
		CustomerID: 12,
		SellerID:   7,
		IsVoucher:  true,
	}
}

func TestRedeemVoucher_DollarDiscount(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetVoucher", mock.Anything, uint(4)).Return(voucherFixture(), nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(500, 500), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 400, 500).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Type == models.TransactionTypeVoucher &&
			tx.PointsAwarded == 0 &&
			tx.AmountPaid == 70.0 &&
			tx.VoucherID != nil && *tx.VoucherID == 4
	})).Return(nil)
	store.On("AppendVoucherUse", mock.Anything, uint(4), "12").Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.Anything).Return()
	store.On("InvalidateSellerVouchers", mock.Anything, uint(7)).Return()

	result, err := svc.RedeemVoucher(context.Background(), seller(), voucherPayload(), 100)
	require.NoError(t, err)

	assert.Equal(t, 70.0, result.Payable)
	assert.Equal(t, 400, result.NewCurrentPoint)
	store.AssertExpectations(t)
}

func TestRedeemVoucher_ForeignPayloadNeverReachesStore(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	payload := voucherPayload()
	payload.SellerID = 99

	_, err := svc.RedeemVoucher(context.Background(), seller(), payload, 100)
	assert.ErrorIs(t, err, domainErrors.ErrForeignVoucher)
	store.AssertNotCalled(t, "InTransaction", mock.Anything)
}

func TestRedeemVoucher_StoredVoucherOwnershipWins(t *testing.T) {
	// The payload claims the scanning seller, but the stored voucher
	// belongs to someone else.
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	foreign := voucherFixture()
	foreign.SellerID = 99

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetVoucher", mock.Anything, uint(4)).Return(foreign, nil)

	_, err := svc.RedeemVoucher(context.Background(), seller(), voucherPayload(), 100)
	assert.ErrorIs(t, err, domainErrors.ErrForeignVoucher)
	store.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestRedeemVoucher_UnguardedDeductionGoesNegative(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetVoucher", mock.Anything, uint(4)).Return(voucherFixture(), nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(40, 900), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), -60, 900).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	store.On("AppendVoucherUse", mock.Anything, uint(4), "12").Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.Anything).Return()
	store.On("InvalidateSellerVouchers", mock.Anything, uint(7)).Return()

	result, err := svc.RedeemVoucher(context.Background(), seller(), voucherPayload(), 100)
	require.NoError(t, err)
	assert.Equal(t, -60, result.NewCurrentPoint)
}

func TestRedeemVoucher_SufficiencyGuard(t *testing.T) {
	store := new(MockStore)
	svc, _ := newTestService(store, Config{RequireSufficientPoints: true})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetVoucher", mock.Anything, uint(4)).Return(voucherFixture(), nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(40, 900), nil)

	_, err := svc.RedeemVoucher(context.Background(), seller(), voucherPayload(), 100)
	assert.ErrorIs(t, err, domainErrors.ErrInsufficientPoints)
	store.AssertNotCalled(t, "SaveUserPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "InvalidateUser", mock.Anything, mock.Anything)
}

func TestRedeemVoucher_DropsCachedCopiesAfterCommit(t *testing.T) {
	// Both the customer's balances and the seller's voucher list (UsedBy)
	// changed; both cached copies must go.
	store := new(MockStore)
	svc, _ := newTestService(store, Config{})

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetVoucher", mock.Anything, uint(4)).Return(voucherFixture(), nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(500, 500), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 400, 500).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	store.On("AppendVoucherUse", mock.Anything, uint(4), "12").Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 12
	})).Return()
	store.On("InvalidateSellerVouchers", mock.Anything, uint(7)).Return()

	_, err := svc.RedeemVoucher(context.Background(), seller(), voucherPayload(), 100)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRedeemVoucher_PublishesLiveUpdates(t *testing.T) {
	store := new(MockStore)
	broker := stream.NewBroker()
	svc := NewService(store, broker, Config{})

	userCh, cancelUser := broker.Subscribe(stream.UserTopic(12))
	defer cancelUser()
	sellerCh, cancelSeller := broker.Subscribe(stream.SellerTopic(7))
	defer cancelSeller()

	store.On("InTransaction", mock.Anything).Return(nil)
	store.On("GetVoucher", mock.Anything, uint(4)).Return(voucherFixture(), nil)
	store.On("GetUser", mock.Anything, uint(12)).Return(customer(500, 500), nil)
	store.On("SaveUserPoints", mock.Anything, uint(12), 400, 500).Return(nil)
	store.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil)
	store.On("AppendVoucherUse", mock.Anything, uint(4), "12").Return(nil)
	store.On("InvalidateUser", mock.Anything, mock.Anything).Return()
	store.On("InvalidateSellerVouchers", mock.Anything, uint(7)).Return()

	_, err := svc.RedeemVoucher(context.Background(), seller(), voucherPayload(), 100)
	require.NoError(t, err)

	select {
	case evt := <-userCh:
		assert.Equal(t, stream.EventUserUpdated, evt.Kind)
	case <-time.After(time.Second):
		t.Fatal("customer feed did not receive a balance update")
	}

	var sawTransaction bool
	for !sawTransaction {
		select {
		case evt := <-sellerCh:
			sawTransaction = evt.Kind == stream.EventTransaction
		case <-time.After(time.Second):
			t.Fatal("seller feed did not receive the transaction")
		}
	}
}
