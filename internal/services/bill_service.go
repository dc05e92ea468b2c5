package services

import (
	"context"

	"saraf-backend/internal/metrics"
	"saraf-backend/internal/models"
)

// BillService coordinates the lifecycle of sale bills with the owner's
// running balances. Each operation runs in one transaction: the ledger
// and the bill row always move together.
type BillService struct {
	Tx     TxRunner
	Bills  BillStore
	Ledger LedgerStore
}

func NewBillService(tx TxRunner, bills BillStore, ledger LedgerStore) *BillService {
	return &BillService{Tx: tx, Bills: bills, Ledger: ledger}
}

func (s *BillService) Create(ctx context.Context, userID int, req *models.BillRequest) (*models.Bill, error) {
	if err := validateBill(req); err != nil {
		return nil, err
	}

	bill := req.ToBill(userID)
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.Ledger.ApplyDelta(ctx, userID, bill.PaymentMode.Channel(), bill.AmountPaid); err != nil {
			return err
		}
		return s.Bills.Create(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("bill", "create").Inc()
	return bill, nil
}

// Update replaces the bill's fields. The old amount_paid is reverted on
// the old payment channel before the new one is applied, so switching
// cash to UPI moves the amount between channels instead of adding to both.
func (s *BillService) Update(ctx context.Context, userID, id int, req *models.BillRequest) (*models.Bill, error) {
	if err := validateBill(req); err != nil {
		return nil, err
	}

	bill := req.ToBill(userID)
	bill.ID = id
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.Bills.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		if _, err := s.Ledger.ApplyDelta(ctx, userID, old.PaymentMode.Channel(), -old.AmountPaid); err != nil {
			return err
		}
		if _, err := s.Ledger.ApplyDelta(ctx, userID, bill.PaymentMode.Channel(), bill.AmountPaid); err != nil {
			return err
		}
		bill.CreatedAt = old.CreatedAt
		return s.Bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("bill", "update").Inc()
	return bill, nil
}

// Delete removes the bill and reverts its full contribution, returning
// the resulting balances.
func (s *BillService) Delete(ctx context.Context, userID, id int) (models.Balances, error) {
	var balances models.Balances
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.Bills.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		balances, err = s.Ledger.ApplyDelta(ctx, userID, old.PaymentMode.Channel(), -old.AmountPaid)
		if err != nil {
			return err
		}
		return s.Bills.Delete(ctx, id, userID)
	})
	if err != nil {
		return models.Balances{}, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("bill", "delete").Inc()
	return balances, nil
}

func (s *BillService) Get(ctx context.Context, userID, id int) (*models.Bill, error) {
	return s.Bills.GetForUser(ctx, id, userID)
}

func (s *BillService) List(ctx context.Context, userID int) ([]*models.Bill, error) {
	return s.Bills.ListForUser(ctx, userID)
}
