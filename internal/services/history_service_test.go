package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"saraf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, bills *fakeBillStore, orders *fakeOrderStore, txns *fakeTransactionStore) {
	t.Helper()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, bills.Create(context.Background(), &models.Bill{
		UserID: 1, CustomerName: "Ramesh", CreatedAt: base,
	}))
	require.NoError(t, orders.Create(context.Background(), &models.CustomerOrder{
		UserID: 1, Name: "Sita", CreatedAt: base.Add(1 * time.Hour),
	}))
	require.NoError(t, txns.Create(context.Background(), &models.Transaction{
		UserID: 1, Description: "supplier payment", CreatedAt: base.Add(2 * time.Hour),
	}))
	// Another user's record never shows up.
	require.NoError(t, bills.Create(context.Background(), &models.Bill{
		UserID: 2, CustomerName: "Other", CreatedAt: base,
	}))
}

func TestHistoryService_Query(t *testing.T) {
	newSvc := func() (*HistoryService, *fakeBillStore, *fakeOrderStore, *fakeTransactionStore, *fakeLedger) {
		bills := newFakeBillStore()
		orders := newFakeOrderStore()
		txns := newFakeTransactionStore()
		ledger := &fakeLedger{cash: 250, bank: 750}
		return NewHistoryService(bills, orders, txns, ledger), bills, orders, txns, ledger
	}

	t.Run("merges all kinds newest first with balances", func(t *testing.T) {
		svc, bills, orders, txns, _ := newSvc()
		seedHistory(t, bills, orders, txns)

		result, err := svc.Query(context.Background(), 1, models.HistoryFilter{})
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalCount)
		require.Len(t, result.Data, 3)
		assert.Equal(t, models.HistoryKindTransaction, result.Data[0].Kind)
		assert.Equal(t, models.HistoryKindOrder, result.Data[1].Kind)
		assert.Equal(t, models.HistoryKindBill, result.Data[2].Kind)
		assert.Equal(t, 250.0, result.CashBalance)
		assert.Equal(t, 750.0, result.BankBalance)
	})

	t.Run("kind filter narrows to one store", func(t *testing.T) {
		svc, bills, orders, txns, _ := newSvc()
		seedHistory(t, bills, orders, txns)

		result, err := svc.Query(context.Background(), 1, models.HistoryFilter{Kind: models.HistoryKindBill})
		require.NoError(t, err)

		require.Len(t, result.Data, 1)
		assert.Equal(t, models.HistoryKindBill, result.Data[0].Kind)
	})

	t.Run("totalCount counts before slicing", func(t *testing.T) {
		svc, bills, orders, txns, _ := newSvc()
		seedHistory(t, bills, orders, txns)

		result, err := svc.Query(context.Background(), 1, models.HistoryFilter{Skip: 1, Limit: 1})
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalCount)
		require.Len(t, result.Data, 1)
		assert.Equal(t, models.HistoryKindOrder, result.Data[0].Kind)
	})

	t.Run("skip past the end yields an empty page not null", func(t *testing.T) {
		svc, bills, orders, txns, _ := newSvc()
		seedHistory(t, bills, orders, txns)

		result, err := svc.Query(context.Background(), 1, models.HistoryFilter{Skip: 10})
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalCount)
		assert.NotNil(t, result.Data)
		assert.Empty(t, result.Data)

		raw, err := json.Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"data":[]`)
	})

	t.Run("date window is inclusive of both edge days", func(t *testing.T) {
		svc, bills, orders, txns, _ := newSvc()
		seedHistory(t, bills, orders, txns)

		start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 10, 23, 59, 59, 999999999, time.UTC)
		result, err := svc.Query(context.Background(), 1, models.HistoryFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalCount)
	})

	t.Run("entries marshal with a type tag", func(t *testing.T) {
		svc, bills, orders, txns, _ := newSvc()
		seedHistory(t, bills, orders, txns)

		result, err := svc.Query(context.Background(), 1, models.HistoryFilter{Kind: models.HistoryKindBill})
		require.NoError(t, err)

		raw, err := json.Marshal(result.Data[0])
		require.NoError(t, err)

		var flat map[string]any
		require.NoError(t, json.Unmarshal(raw, &flat))
		assert.Equal(t, "bill", flat["type"])
		assert.Equal(t, "Ramesh", flat["customer_name"])
	})
}
