package services

import (
	"context"
	"testing"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billReq(mode models.PaymentMode, amount, paid float64) *models.BillRequest {
	return &models.BillRequest{
		CustomerName:    "Ramesh Kumar",
		CustomerPhoneNo: "9876543210",
		Address:         "MG Road",
		Amount:          amount,
		PaymentMode:     mode,
		AmountPaid:      paid,
		PaymentStatus:   models.PaymentStatusPartial,
	}
}

func TestBillService_Create(t *testing.T) {
	t.Run("cash payment credits the cash balance", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewBillService(passTx{}, newFakeBillStore(), ledger)

		bill, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		assert.Equal(t, 2000.0, ledger.cash)
		assert.Equal(t, 0.0, ledger.bank)
		assert.Equal(t, 3000.0, bill.PaymentRemaining)
	})

	t.Run("UPI payment credits the bank balance", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewBillService(passTx{}, newFakeBillStore(), ledger)

		_, err := svc.Create(context.Background(), 1, billReq(models.ModeUPI, 1000, 1000))
		require.NoError(t, err)

		assert.Equal(t, 0.0, ledger.cash)
		assert.Equal(t, 1000.0, ledger.bank)
	})

	t.Run("invalid phone rejects without touching the ledger", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewBillService(passTx{}, newFakeBillStore(), ledger)

		req := billReq(models.ModeCash, 1000, 500)
		req.CustomerPhoneNo = "12345"
		_, err := svc.Create(context.Background(), 1, req)

		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Empty(t, ledger.applied)
	})

	t.Run("store failure rolls the delta back", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeBillStore()
		store.failOn = "create"
		svc := NewBillService(revertTx{ledger: ledger}, store, ledger)

		_, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 1000, 500))

		require.Error(t, err)
		assert.Equal(t, 0.0, ledger.cash)
	})
}

func TestBillService_Update(t *testing.T) {
	t.Run("revert then apply when mode changes channel", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeBillStore()
		svc := NewBillService(passTx{}, store, ledger)

		bill, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, bill.ID, billReq(models.ModeUPI, 5000, 3000))
		require.NoError(t, err)

		assert.Equal(t, 0.0, ledger.cash)
		assert.Equal(t, 3000.0, ledger.bank)

		// The update is exactly one revert followed by one apply.
		require.Len(t, ledger.applied, 3)
		assert.Equal(t, appliedDelta{models.ChannelCash, -2000}, ledger.applied[1])
		assert.Equal(t, appliedDelta{models.ChannelBank, 3000}, ledger.applied[2])
	})

	t.Run("same payload leaves balances unchanged", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeBillStore()
		svc := NewBillService(passTx{}, store, ledger)

		bill, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, bill.ID, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		assert.Equal(t, 2000.0, ledger.cash)
	})

	t.Run("someone else's bill reports not found", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeBillStore()
		svc := NewBillService(passTx{}, store, ledger)

		bill, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 2, bill.ID, billReq(models.ModeCash, 5000, 2500))
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, 2000.0, ledger.cash)
	})

	t.Run("preserves the original creation time", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeBillStore()
		svc := NewBillService(passTx{}, store, ledger)

		bill, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), 1, bill.ID, billReq(models.ModeCash, 5000, 2500))
		require.NoError(t, err)
		assert.Equal(t, bill.CreatedAt, updated.CreatedAt)
	})
}

func TestBillService_Delete(t *testing.T) {
	t.Run("reverts the full contribution and returns balances", func(t *testing.T) {
		ledger := &fakeLedger{cash: 100}
		store := newFakeBillStore()
		svc := NewBillService(passTx{}, store, ledger)

		bill, err := svc.Create(context.Background(), 1, billReq(models.ModeCash, 5000, 2000))
		require.NoError(t, err)

		balances, err := svc.Delete(context.Background(), 1, bill.ID)
		require.NoError(t, err)

		assert.Equal(t, 100.0, balances.Cash)
		assert.Equal(t, 0.0, balances.Bank)

		_, err = svc.Get(context.Background(), 1, bill.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("missing bill reports not found", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewBillService(passTx{}, newFakeBillStore(), ledger)

		_, err := svc.Delete(context.Background(), 1, 42)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, ledger.applied)
	})
}

func TestBillService_BalanceConservation(t *testing.T) {
	// Whatever sequence of writes, deleting everything must land back on
	// the starting balances.
	ledger := &fakeLedger{cash: 500, bank: 700}
	store := newFakeBillStore()
	svc := NewBillService(passTx{}, store, ledger)

	ctx := context.Background()
	b1, err := svc.Create(ctx, 1, billReq(models.ModeCash, 9000, 4000))
	require.NoError(t, err)
	b2, err := svc.Create(ctx, 1, billReq(models.ModeUPI, 3000, 3000))
	require.NoError(t, err)
	_, err = svc.Update(ctx, 1, b1.ID, billReq(models.ModeUPI, 9000, 6000))
	require.NoError(t, err)

	_, err = svc.Delete(ctx, 1, b1.ID)
	require.NoError(t, err)
	balances, err := svc.Delete(ctx, 1, b2.ID)
	require.NoError(t, err)

	assert.Equal(t, 500.0, balances.Cash)
	assert.Equal(t, 700.0, balances.Bank)
}
