package services

import (
	"context"

	"saraf-backend/internal/models"
)

// TxRunner executes fn atomically; every store call inside fn shares the
// same transaction. The in-memory test fakes implement it as a plain
// call-through.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LedgerStore owns the per-user running balances. Injected as an
// interface so tests can swap an in-memory fake for the Postgres one.
type LedgerStore interface {
	ApplyDelta(ctx context.Context, userID int, channel models.Channel, delta float64) (models.Balances, error)
	Balances(ctx context.Context, userID int) (models.Balances, error)
}

type BillStore interface {
	Create(ctx context.Context, b *models.Bill) error
	GetForUser(ctx context.Context, id, userID int) (*models.Bill, error)
	Update(ctx context.Context, b *models.Bill) error
	Delete(ctx context.Context, id, userID int) error
	ListForUser(ctx context.Context, userID int) ([]*models.Bill, error)
	Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.Bill, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *models.CustomerOrder) error
	GetForUser(ctx context.Context, id, userID int) (*models.CustomerOrder, error)
	Update(ctx context.Context, o *models.CustomerOrder) error
	Delete(ctx context.Context, id, userID int) error
	ListForUser(ctx context.Context, userID int) ([]*models.CustomerOrder, error)
	Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.CustomerOrder, error)
}

type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	GetForUser(ctx context.Context, id, userID int) (*models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, id, userID int) error
	ListForUser(ctx context.Context, userID int) ([]*models.Transaction, error)
	Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.Transaction, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
