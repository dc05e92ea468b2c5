package services

import (
	"context"

	"saraf-backend/internal/metrics"
	"saraf-backend/internal/models"
)

// CustomOrderService coordinates bespoke orders with the owner's
// balances. An order with a zero prepayment never touches the ledger,
// neither when applied nor when reverted, so updating a zero-prepaid
// order to a paid one applies only the new delta.
type CustomOrderService struct {
	Tx     TxRunner
	Orders OrderStore
	Ledger LedgerStore
}

func NewCustomOrderService(tx TxRunner, orders OrderStore, ledger LedgerStore) *CustomOrderService {
	return &CustomOrderService{Tx: tx, Orders: orders, Ledger: ledger}
}

func (s *CustomOrderService) Create(ctx context.Context, userID int, req *models.CustomerOrderRequest) (*models.CustomerOrder, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	order := req.ToOrder(userID)
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if order.AmountPrepaid != 0 {
			if _, err := s.Ledger.ApplyDelta(ctx, userID, order.PaymentType.Channel(), order.AmountPrepaid); err != nil {
				return err
			}
		}
		return s.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("customer_order", "create").Inc()
	return order, nil
}

func (s *CustomOrderService) Update(ctx context.Context, userID, id int, req *models.CustomerOrderRequest) (*models.CustomerOrder, error) {
	if err := validateOrder(req); err != nil {
		return nil, err
	}

	order := req.ToOrder(userID)
	order.ID = id
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.Orders.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		if old.AmountPrepaid != 0 {
			if _, err := s.Ledger.ApplyDelta(ctx, userID, old.PaymentType.Channel(), -old.AmountPrepaid); err != nil {
				return err
			}
		}
		if order.AmountPrepaid != 0 {
			if _, err := s.Ledger.ApplyDelta(ctx, userID, order.PaymentType.Channel(), order.AmountPrepaid); err != nil {
				return err
			}
		}
		order.CreatedAt = old.CreatedAt
		return s.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("customer_order", "update").Inc()
	return order, nil
}

func (s *CustomOrderService) Delete(ctx context.Context, userID, id int) (models.Balances, error) {
	var balances models.Balances
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.Orders.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		if old.AmountPrepaid != 0 {
			if balances, err = s.Ledger.ApplyDelta(ctx, userID, old.PaymentType.Channel(), -old.AmountPrepaid); err != nil {
				return err
			}
		} else if balances, err = s.Ledger.Balances(ctx, userID); err != nil {
			return err
		}
		return s.Orders.Delete(ctx, id, userID)
	})
	if err != nil {
		return models.Balances{}, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("customer_order", "delete").Inc()
	return balances, nil
}

func (s *CustomOrderService) Get(ctx context.Context, userID, id int) (*models.CustomerOrder, error) {
	return s.Orders.GetForUser(ctx, id, userID)
}

func (s *CustomOrderService) List(ctx context.Context, userID int) ([]*models.CustomerOrder, error) {
	return s.Orders.ListForUser(ctx, userID)
}
