package services

import (
	"context"
	"sort"

	"saraf-backend/internal/models"
)

const defaultHistoryLimit = 20

// HistoryService merges the three record kinds into one chronological
// feed. It only reads; it never mutates the ledger or any record.
type HistoryService struct {
	Bills        BillStore
	Orders       OrderStore
	Transactions TransactionStore
	Ledger       LedgerStore
}

func NewHistoryService(bills BillStore, orders OrderStore, transactions TransactionStore, ledger LedgerStore) *HistoryService {
	return &HistoryService{Bills: bills, Orders: orders, Transactions: transactions, Ledger: ledger}
}

// Query fetches matching records of the requested kinds, tags them,
// sorts by creation time descending and returns the skip/limit slice
// together with the pre-slice total and the owner's current balances.
func (s *HistoryService) Query(ctx context.Context, userID int, f models.HistoryFilter) (*models.HistoryResult, error) {
	var entries []models.HistoryEntry

	if f.Kind == "" || f.Kind == models.HistoryKindBill {
		bills, err := s.Bills.Search(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		for _, b := range bills {
			entries = append(entries, models.HistoryEntry{Kind: models.HistoryKindBill, CreatedAt: b.CreatedAt, Record: b})
		}
	}

	if f.Kind == "" || f.Kind == models.HistoryKindOrder {
		orders, err := s.Orders.Search(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			entries = append(entries, models.HistoryEntry{Kind: models.HistoryKindOrder, CreatedAt: o.CreatedAt, Record: o})
		}
	}

	if f.Kind == "" || f.Kind == models.HistoryKindTransaction {
		txns, err := s.Transactions.Search(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		for _, t := range txns {
			entries = append(entries, models.HistoryEntry{Kind: models.HistoryKindTransaction, CreatedAt: t.CreatedAt, Record: t})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	total := len(entries)

	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}
	page := entries[skip:end]
	if page == nil {
		page = []models.HistoryEntry{}
	}

	balances, err := s.Ledger.Balances(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.HistoryResult{
		TotalCount:  total,
		Data:        page,
		CashBalance: balances.Cash,
		BankBalance: balances.Bank,
	}, nil
}
