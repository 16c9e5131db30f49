package scan

import (
	"context"
	"fmt"

	domainErrors "nushoplah/internal/errors"
	"nushoplah/internal/models"
	"nushoplah/internal/repositories"
	"nushoplah/internal/services/loyalty"
	"nushoplah/internal/services/transaction"
	"nushoplah/internal/services/voucher"
	"nushoplah/internal/stream"

	"github.com/sirupsen/logrus"
)

// Service executes the two redemption flows behind a seller's scanner.
//
// Each flow is an explicit ordered list of persistence steps. The steps run
// inside one database transaction, so a failure in any step rolls back the
// whole redemption; the per-step outcomes are still reported individually
// for diagnostics.
type Service interface {
	Classify(raw string, scanningSellerID uint) (*Result, error)
	AwardPoints(ctx context.Context, seller *models.User, payload *models.IdentityPayload, amountPaid float64) (*Redemption, error)
	RedeemVoucher(ctx context.Context, seller *models.User, payload *models.VoucherPayload, originalPrice float64) (*Redemption, error)
}

type service struct {
	store  repositories.RedemptionStore
	broker *stream.Broker
	config Config
}

// NewService creates a new scan service.
func NewService(store repositories.RedemptionStore, broker *stream.Broker, config Config) Service {
	if store == nil {
		panic("redemption store is required")
	}
	if broker == nil {
		panic("broker is required")
	}
	return &service{store: store, broker: broker, config: config}
}

func (s *service) Classify(raw string, scanningSellerID uint) (*Result, error) {
	return Classify(raw, scanningSellerID)
}

// AwardPoints runs the points flow: read the customer's fresh balances,
// apply the tier multiplier to each independently, persist, and record a
// points transaction.
func (s *service) AwardPoints(ctx context.Context, seller *models.User, payload *models.IdentityPayload, amountPaid float64) (*Redemption, error) {
	if amountPaid < 0 {
		return nil, domainErrors.ErrNegativePoints
	}

	result := &Redemption{}
	var customer *models.User

	err := s.store.InTransaction(ctx, func(tx repositories.RedemptionStore) error {
		var err error
		customer, err = tx.GetUser(ctx, payload.UID)
		if err != nil {
			result.fail(StepBalanceRead, err)
			return domainErrors.ErrRemoteReadFailure
		}
		result.ok(StepBalanceRead)

		// Each balance is evaluated against its own pre-transaction value;
		// the two can sit in different tiers at once.
		newCurrent, err := loyalty.AwardPoints(customer.CurrentPoint, amountPaid)
		if err != nil {
			return err
		}
		newTotal, err := loyalty.AwardPoints(customer.TotalPoint, amountPaid)
		if err != nil {
			return err
		}

		if err := tx.SaveUserPoints(ctx, customer.ID, newCurrent, newTotal); err != nil {
			result.fail(StepBalanceWrite, err)
			return domainErrors.ErrRemoteWriteFailure
		}
		result.ok(StepBalanceWrite)

		record := transaction.NewPointsTransaction(customer, seller, amountPaid, newCurrent-customer.CurrentPoint)
		if err := tx.CreateTransaction(ctx, record); err != nil {
			result.fail(StepTransactionWrite, err)
			return domainErrors.ErrRemoteWriteFailure
		}
		result.ok(StepTransactionWrite)

		result.Transaction = record
		result.PreviousCurrentPoint = customer.CurrentPoint
		result.NewCurrentPoint = newCurrent
		result.NewTotalPoint = newTotal
		return nil
	})
	if err != nil {
		s.logFailure("points", payload.UID, seller.ID, result, err)
		return result, err
	}

	// The balances changed under the cache's feet; drop the cached copies so
	// the next profile read sees the committed values.
	s.store.InvalidateUser(ctx, customer)
	s.publishPointsEvents(payload.UID, seller.ID, result)
	return result, nil
}

// RedeemVoucher runs the voucher flow: compute the discounted payable,
// deduct the voucher's point cost, record a voucher transaction, and mark
// the voucher used by the customer.
func (s *service) RedeemVoucher(ctx context.Context, seller *models.User, payload *models.VoucherPayload, originalPrice float64) (*Redemption, error) {
	if originalPrice < 0 {
		return nil, fmt.Errorf("original price cannot be negative")
	}
	if payload.SellerID != seller.ID {
		return nil, domainErrors.ErrForeignVoucher
	}

	result := &Redemption{}
	var customer *models.User

	err := s.store.InTransaction(ctx, func(tx repositories.RedemptionStore) error {
		v, err := tx.GetVoucher(ctx, payload.VoucherID)
		if err != nil {
			result.fail(StepVoucherRead, err)
			return domainErrors.ErrRemoteReadFailure
		}
		// The stored voucher is authoritative; a tampered payload cannot
		// change the discount or cross seller boundaries.
		if v.SellerID != seller.ID {
			result.fail(StepVoucherRead, domainErrors.ErrForeignVoucher)
			return domainErrors.ErrForeignVoucher
		}
		result.ok(StepVoucherRead)

		customer, err = tx.GetUser(ctx, payload.CustomerID)
		if err != nil {
			result.fail(StepBalanceRead, err)
			return domainErrors.ErrRemoteReadFailure
		}
		result.ok(StepBalanceRead)

		payable := voucher.Payable(originalPrice, voucher.Discount{
			Type:       v.Type,
			Amount:     v.Amount,
			Percentage: v.Percentage,
		})

		newCurrent := customer.CurrentPoint - v.PointsRequired
		if newCurrent < 0 {
			if s.config.RequireSufficientPoints {
				return domainErrors.ErrInsufficientPoints
			}
			// Historical behavior: the deduction is unguarded. Keep it,
			// but leave a trace for reconciliation.
			logrus.WithFields(logrus.Fields{
				"customer_id": customer.ID,
				"voucher_id":  v.ID,
				"balance":     newCurrent,
			}).Warn("voucher redemption drove point balance negative")
		}

		if err := tx.SaveUserPoints(ctx, customer.ID, newCurrent, customer.TotalPoint); err != nil {
			result.fail(StepPointsDeduction, err)
			return domainErrors.ErrRemoteWriteFailure
		}
		result.ok(StepPointsDeduction)

		record := transaction.NewVoucherTransaction(customer, seller, v, payable)
		if err := tx.CreateTransaction(ctx, record); err != nil {
			result.fail(StepTransactionWrite, err)
			return domainErrors.ErrRemoteWriteFailure
		}
		result.ok(StepTransactionWrite)

		if err := tx.AppendVoucherUse(ctx, v.ID, fmt.Sprint(customer.ID)); err != nil {
			result.fail(StepVoucherUsage, err)
			return domainErrors.ErrRemoteWriteFailure
		}
		result.ok(StepVoucherUsage)

		result.Transaction = record
		result.Payable = payable
		result.NewCurrentPoint = newCurrent
		return nil
	})
	if err != nil {
		s.logFailure("voucher", payload.CustomerID, seller.ID, result, err)
		return result, err
	}

	s.store.InvalidateUser(ctx, customer)
	s.store.InvalidateSellerVouchers(ctx, seller.ID)
	s.publishVoucherEvents(payload.CustomerID, seller.ID, result)
	return result, nil
}

func (s *service) publishPointsEvents(customerID, sellerID uint, r *Redemption) {
	s.broker.Publish(stream.UserTopic(customerID), stream.EventUserUpdated, map[string]int{
		"current_point": r.NewCurrentPoint,
		"total_point":   r.NewTotalPoint,
	})
	s.broker.Publish(stream.UserTopic(customerID), stream.EventTransaction, r.Transaction)
	s.broker.Publish(stream.SellerTopic(sellerID), stream.EventTransaction, r.Transaction)
}

func (s *service) publishVoucherEvents(customerID, sellerID uint, r *Redemption) {
	s.broker.Publish(stream.UserTopic(customerID), stream.EventUserUpdated, map[string]int{
		"current_point": r.NewCurrentPoint,
	})
	s.broker.Publish(stream.UserTopic(customerID), stream.EventTransaction, r.Transaction)
	s.broker.Publish(stream.SellerTopic(sellerID), stream.EventTransaction, r.Transaction)
}

func (s *service) logFailure(flow string, customerID, sellerID uint, r *Redemption, err error) {
	logrus.WithFields(logrus.Fields{
		"flow":        flow,
		"customer_id": customerID,
		"seller_id":   sellerID,
		"steps":       r.Steps,
	}).WithError(err).Error("redemption aborted, all steps rolled back")
}

func (r *Redemption) ok(step string) {
	r.Steps = append(r.Steps, StepResult{Name: step, Status: "ok"})
}

func (r *Redemption) fail(step string, err error) {
	r.Steps = append(r.Steps, StepResult{Name: step, Status: "failed", Error: err.Error()})
}
