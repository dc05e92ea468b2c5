package services

import (
	"context"
	"testing"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnReq(kind models.TransactionType, mode models.PaymentMode, amount float64) *models.TransactionRequest {
	return &models.TransactionRequest{
		Amount:              amount,
		Description:         "gold purchase from supplier",
		TransactionType:     kind,
		Mode:                mode,
		Category:            models.CategoryInHouse,
		SourceOrDestination: "Agarwal Bullion",
	}
}

func TestTransactionService_Create(t *testing.T) {
	t.Run("inflow adds, outflow subtracts", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewTransactionService(passTx{}, newFakeTransactionStore(), ledger)

		ctx := context.Background()
		_, err := svc.Create(ctx, 1, txnReq(models.TransactionInflow, models.ModeCash, 500))
		require.NoError(t, err)
		_, err = svc.Create(ctx, 1, txnReq(models.TransactionOutflow, models.ModeCash, 300))
		require.NoError(t, err)

		assert.Equal(t, 200.0, ledger.cash)
	})

	t.Run("balances may go negative", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewTransactionService(passTx{}, newFakeTransactionStore(), ledger)

		_, err := svc.Create(context.Background(), 1, txnReq(models.TransactionOutflow, models.ModeUPI, 900))
		require.NoError(t, err)

		assert.Equal(t, -900.0, ledger.bank)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewTransactionService(passTx{}, newFakeTransactionStore(), ledger)

		_, err := svc.Create(context.Background(), 1, txnReq(models.TransactionInflow, models.ModeCash, 0))
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Empty(t, ledger.applied)
	})
}

func TestTransactionService_Update(t *testing.T) {
	t.Run("flipping direction negates the old delta first", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeTransactionStore()
		svc := NewTransactionService(passTx{}, store, ledger)

		txn, err := svc.Create(context.Background(), 1, txnReq(models.TransactionInflow, models.ModeCash, 500))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, txn.ID, txnReq(models.TransactionOutflow, models.ModeCash, 500))
		require.NoError(t, err)

		assert.Equal(t, -500.0, ledger.cash)
		require.Len(t, ledger.applied, 3)
		assert.Equal(t, appliedDelta{models.ChannelCash, -500}, ledger.applied[1])
		assert.Equal(t, appliedDelta{models.ChannelCash, -500}, ledger.applied[2])
	})

	t.Run("mode change moves the delta across channels", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeTransactionStore()
		svc := NewTransactionService(passTx{}, store, ledger)

		txn, err := svc.Create(context.Background(), 1, txnReq(models.TransactionInflow, models.ModeCash, 750))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, txn.ID, txnReq(models.TransactionInflow, models.ModeUPI, 750))
		require.NoError(t, err)

		assert.Equal(t, 0.0, ledger.cash)
		assert.Equal(t, 750.0, ledger.bank)
	})
}

func TestTransactionService_Delete(t *testing.T) {
	t.Run("deleting an outflow restores the money", func(t *testing.T) {
		ledger := &fakeLedger{cash: 1000}
		store := newFakeTransactionStore()
		svc := NewTransactionService(passTx{}, store, ledger)

		txn, err := svc.Create(context.Background(), 1, txnReq(models.TransactionOutflow, models.ModeCash, 400))
		require.NoError(t, err)
		assert.Equal(t, 600.0, ledger.cash)

		balances, err := svc.Delete(context.Background(), 1, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, balances.Cash)
	})

	t.Run("someone else's transaction reports not found", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeTransactionStore()
		svc := NewTransactionService(passTx{}, store, ledger)

		txn, err := svc.Create(context.Background(), 1, txnReq(models.TransactionInflow, models.ModeCash, 100))
		require.NoError(t, err)

		_, err = svc.Delete(context.Background(), 2, txn.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
