package voucher

import (
	"context"
	"fmt"

	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/stream"
	"nushoplah/internal/validation"
)

// Service manages the seller voucher lifecycle.
type Service interface {
	Create(ctx context.Context, seller *models.User, input *models.CreateVoucherInput) (*models.Voucher, error)
	Get(ctx context.Context, id uint) (*models.Voucher, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Voucher, error)
	ListForCustomer(ctx context.Context, customerID uint) ([]models.VoucherView, error)
	Cancel(ctx context.Context, sellerID, voucherID uint) error
	BuildRedemptionPayload(ctx context.Context, voucherID uint, customer *models.User) (*models.VoucherPayload, error)
}

type service struct {
	repo   repositories.VoucherRepository
	broker *stream.Broker
}

// NewService creates a new voucher service.
func NewService(repo repositories.VoucherRepository, broker *stream.Broker) Service {
	if repo == nil {
		panic("voucher repo is required")
	}
	if broker == nil {
		panic("broker is required")
	}
	return &service{repo: repo, broker: broker}
}

func (s *service) Create(ctx context.Context, seller *models.User, input *models.CreateVoucherInput) (*models.Voucher, error) {
	if err := validation.ValidateVoucherInput(input); err != nil {
		return nil, err
	}

	v := &models.Voucher{
		SellerID:       seller.ID,
		SellerName:     seller.FirstName,
		Type:           input.Type,
		Amount:         input.Amount,
		Percentage:     input.Percentage,
		PointsRequired: input.PointsRequired,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
	}

	if err := s.repo.Create(v); err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.broker.Publish(stream.SellerTopic(seller.ID), stream.EventVoucherCreated, v)
	return v, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Voucher, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repositories.ErrVoucherNotFound {
			return nil, ErrVoucherNotFound
		}
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return v, nil
}

func (s *service) ListBySeller(ctx context.Context, sellerID uint) ([]models.Voucher, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *service) ListForCustomer(ctx context.Context, customerID uint) ([]models.VoucherView, error) {
	vouchers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	customerKey := fmt.Sprint(customerID)
	views := make([]models.VoucherView, 0, len(vouchers))
	for _, v := range vouchers {
		views = append(views, models.VoucherView{
			ID:             v.ID,
			SellerID:       v.SellerID,
			SellerName:     v.SellerName,
			Type:           v.Type,
			Amount:         v.Amount,
			Percentage:     v.Percentage,
			PointsRequired: v.PointsRequired,
			Description:    v.Description,
			ImageURL:       v.ImageURL,
			AlreadyUsed:    v.UsedByCustomer(customerKey),
			CreatedAt:      v.CreatedAt,
		})
	}
	return views, nil
}

// Cancel deletes a voucher. Only the issuing seller may cancel it.
func (s *service) Cancel(ctx context.Context, sellerID, voucherID uint) error {
	v, err := s.Get(ctx, voucherID)
	if err != nil {
		return err
	}
	if v.SellerID != sellerID {
		return ErrNotIssuer
	}
	if err := s.repo.Delete(ctx, voucherID); err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	s.broker.Publish(stream.SellerTopic(sellerID), stream.EventVoucherDeleted, v.ID)
	return nil
}

// BuildRedemptionPayload assembles the JSON document a customer renders into
// a QR code to redeem a specific voucher at the issuing seller.
func (s *service) BuildRedemptionPayload(ctx context.Context, voucherID uint, customer *models.User) (*models.VoucherPayload, error) {
	v, err := s.Get(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if v.UsedByCustomer(fmt.Sprint(customer.ID)) {
		return nil, ErrAlreadyUsed
	}

	return &models.VoucherPayload{
		VoucherID:          v.ID,
		VoucherType:        v.Type,
		VoucherAmount:      v.Amount,
		VoucherPercentage:  v.Percentage,
		PointsRequired:     v.PointsRequired,
		VoucherDescription: v.Description,
		CustomerID:         customer.ID,
		CustomerName:       customer.FirstName,
		SellerID:           v.SellerID,
		IsVoucher:          true,
	}, nil
}
