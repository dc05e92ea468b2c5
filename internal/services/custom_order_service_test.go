package services

import (
	"context"
	"testing"
	"time"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderReq(mode models.PaymentMode, prepaid float64) *models.CustomerOrderRequest {
	return &models.CustomerOrderRequest{
		Name:                   "Sita Devi",
		Phone:                  "9123456780",
		Address:                "Station Road",
		OrnamentName:           "Nath",
		WeightRange:            "8-10g",
		AmountPrepaid:          prepaid,
		PaymentType:            mode,
		ExpectedCompletionTime: time.Now().Add(7 * 24 * time.Hour),
	}
}

func TestCustomOrderService_Create(t *testing.T) {
	t.Run("prepaid amount credits the payment channel", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewCustomOrderService(passTx{}, newFakeOrderStore(), ledger)

		_, err := svc.Create(context.Background(), 1, orderReq(models.ModeUPI, 1500))
		require.NoError(t, err)

		assert.Equal(t, 1500.0, ledger.bank)
		assert.Equal(t, 0.0, ledger.cash)
	})

	t.Run("zero prepayment never touches the ledger", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewCustomOrderService(passTx{}, newFakeOrderStore(), ledger)

		req := orderReq("", 0)
		_, err := svc.Create(context.Background(), 1, req)
		require.NoError(t, err)

		assert.Empty(t, ledger.applied)
	})

	t.Run("prepaid without payment type is rejected", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := NewCustomOrderService(passTx{}, newFakeOrderStore(), ledger)

		req := orderReq("", 500)
		_, err := svc.Create(context.Background(), 1, req)

		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Empty(t, ledger.applied)
	})
}

func TestCustomOrderService_Update(t *testing.T) {
	t.Run("zero to paid applies only the new delta", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeOrderStore()
		svc := NewCustomOrderService(passTx{}, store, ledger)

		order, err := svc.Create(context.Background(), 1, orderReq("", 0))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, order.ID, orderReq(models.ModeCash, 800))
		require.NoError(t, err)

		require.Len(t, ledger.applied, 1)
		assert.Equal(t, appliedDelta{models.ChannelCash, 800}, ledger.applied[0])
	})

	t.Run("paid to zero reverts only the old delta", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeOrderStore()
		svc := NewCustomOrderService(passTx{}, store, ledger)

		order, err := svc.Create(context.Background(), 1, orderReq(models.ModeCash, 800))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, order.ID, orderReq("", 0))
		require.NoError(t, err)

		assert.Equal(t, 0.0, ledger.cash)
		require.Len(t, ledger.applied, 2)
		assert.Equal(t, appliedDelta{models.ChannelCash, -800}, ledger.applied[1])
	})

	t.Run("channel switch moves the prepayment", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeOrderStore()
		svc := NewCustomOrderService(passTx{}, store, ledger)

		order, err := svc.Create(context.Background(), 1, orderReq(models.ModeCash, 1200))
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), 1, order.ID, orderReq(models.ModeUPI, 1200))
		require.NoError(t, err)

		assert.Equal(t, 0.0, ledger.cash)
		assert.Equal(t, 1200.0, ledger.bank)
	})
}

func TestCustomOrderService_Delete(t *testing.T) {
	t.Run("reverts the prepayment", func(t *testing.T) {
		ledger := &fakeLedger{bank: 50}
		store := newFakeOrderStore()
		svc := NewCustomOrderService(passTx{}, store, ledger)

		order, err := svc.Create(context.Background(), 1, orderReq(models.ModeUPI, 1500))
		require.NoError(t, err)

		balances, err := svc.Delete(context.Background(), 1, order.ID)
		require.NoError(t, err)

		assert.Equal(t, 50.0, balances.Bank)
	})

	t.Run("zero prepayment still returns current balances", func(t *testing.T) {
		ledger := &fakeLedger{cash: 300, bank: 400}
		store := newFakeOrderStore()
		svc := NewCustomOrderService(passTx{}, store, ledger)

		order, err := svc.Create(context.Background(), 1, orderReq("", 0))
		require.NoError(t, err)

		balances, err := svc.Delete(context.Background(), 1, order.ID)
		require.NoError(t, err)

		assert.Equal(t, 300.0, balances.Cash)
		assert.Equal(t, 400.0, balances.Bank)
		assert.Empty(t, ledger.applied)
	})

	t.Run("someone else's order reports not found", func(t *testing.T) {
		ledger := &fakeLedger{}
		store := newFakeOrderStore()
		svc := NewCustomOrderService(passTx{}, store, ledger)

		order, err := svc.Create(context.Background(), 1, orderReq(models.ModeCash, 100))
		require.NoError(t, err)

		_, err = svc.Delete(context.Background(), 2, order.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, 100.0, ledger.cash)
	})
}
