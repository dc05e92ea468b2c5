package services

import (
	"context"

	"saraf-backend/internal/metrics"
	"saraf-backend/internal/models"
)

// TransactionService coordinates standalone cash/bank movements with
// the owner's balances. The signed delta is positive for inflow and
// negative for outflow; revert is the negated delta on the old mode's
// channel.
type TransactionService struct {
	Tx           TxRunner
	Transactions TransactionStore
	Ledger       LedgerStore
}

func NewTransactionService(tx TxRunner, transactions TransactionStore, ledger LedgerStore) *TransactionService {
	return &TransactionService{Tx: tx, Transactions: transactions, Ledger: ledger}
}

func (s *TransactionService) Create(ctx context.Context, userID int, req *models.TransactionRequest) (*models.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, err
	}

	txn := req.ToTransaction(userID)
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.Ledger.ApplyDelta(ctx, userID, txn.Mode.Channel(), txn.Delta()); err != nil {
			return err
		}
		return s.Transactions.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("transaction", "create").Inc()
	return txn, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id int, req *models.TransactionRequest) (*models.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, err
	}

	txn := req.ToTransaction(userID)
	txn.ID = id
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.Transactions.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		if _, err := s.Ledger.ApplyDelta(ctx, userID, old.Mode.Channel(), -old.Delta()); err != nil {
			return err
		}
		if _, err := s.Ledger.ApplyDelta(ctx, userID, txn.Mode.Channel(), txn.Delta()); err != nil {
			return err
		}
		txn.CreatedAt = old.CreatedAt
		return s.Transactions.Update(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("transaction", "update").Inc()
	return txn, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id int) (models.Balances, error) {
	var balances models.Balances
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.Transactions.GetForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		balances, err = s.Ledger.ApplyDelta(ctx, userID, old.Mode.Channel(), -old.Delta())
		if err != nil {
			return err
		}
		return s.Transactions.Delete(ctx, id, userID)
	})
	if err != nil {
		return models.Balances{}, err
	}
	metrics.BalanceMutationsTotal.WithLabelValues("transaction", "delete").Inc()
	return balances, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id int) (*models.Transaction, error) {
	return s.Transactions.GetForUser(ctx, id, userID)
}

func (s *TransactionService) List(ctx context.Context, userID int) ([]*models.Transaction, error) {
	return s.Transactions.ListForUser(ctx, userID)
}
