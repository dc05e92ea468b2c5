package repositories

import (
	"context"
	"errors"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository owns the two running balances on the users row.
// Deltas are applied with a single atomic increment, so concurrent
// operations on the same user serialize on the row lock and never lose
// an update. Balances may go negative; that is accepted business
// behavior, not guarded against.
type LedgerRepository struct {
	Pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{Pool: pool}
}

// ApplyDelta adds the signed amount to the named channel and returns
// both balances. Reverting is applying the negated delta; there is no
// separate primitive.
func (r *LedgerRepository) ApplyDelta(ctx context.Context, userID int, channel models.Channel, delta float64) (models.Balances, error) {
	column := "cash_balance"
	if channel == models.ChannelBank {
		column = "bank_balance"
	}

	query := `UPDATE users SET ` + column + ` = ` + column + ` + $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2
	          RETURNING cash_balance, bank_balance`

	var b models.Balances
	err := dbFrom(ctx, r.Pool).QueryRow(ctx, query, delta, userID).Scan(&b.Cash, &b.Bank)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balances{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Balances{}, err
	}
	return b, nil
}

// Balances reads the current pair without mutating anything.
func (r *LedgerRepository) Balances(ctx context.Context, userID int) (models.Balances, error) {
	var b models.Balances
	err := dbFrom(ctx, r.Pool).QueryRow(ctx,
		`SELECT cash_balance, bank_balance FROM users WHERE id=$1`, userID,
	).Scan(&b.Cash, &b.Bank)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Balances{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Balances{}, err
	}
	return b, nil
}
