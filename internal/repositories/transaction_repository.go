package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	Pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{Pool: pool}
}

const transactionColumns = `id, user_id, amount, description, transaction_type, mode, category,
	source_or_destination, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	return dbFrom(ctx, r.Pool).QueryRow(ctx,
		`INSERT INTO transactions (user_id, amount, description, transaction_type, mode, category, source_or_destination)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Amount, t.Description, t.TransactionType, t.Mode, t.Category, t.SourceOrDestination,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TransactionRepository) GetForUser(ctx context.Context, id, userID int) (*models.Transaction, error) {
	row := dbFrom(ctx, r.Pool).QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id=$1 AND user_id=$2`, id, userID)

	txn, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t *models.Transaction) error {
	tag, err := dbFrom(ctx, r.Pool).Exec(ctx,
		`UPDATE transactions SET amount=$1, description=$2, transaction_type=$3, mode=$4,
		   category=$5, source_or_destination=$6, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$7 AND user_id=$8`,
		t.Amount, t.Description, t.TransactionType, t.Mode,
		t.Category, t.SourceOrDestination, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID int) error {
	tag, err := dbFrom(ctx, r.Pool).Exec(ctx,
		`DELETE FROM transactions WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) ListForUser(ctx context.Context, userID int) ([]*models.Transaction, error) {
	return r.Search(ctx, userID, models.HistoryFilter{})
}

func (r *TransactionRepository) Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id=$1`
	args := []any{userID}
	query, args = appendDateWindow(query, args, f)

	if f.Query != "" {
		var clauses []string
		for _, word := range strings.Fields(f.Query) {
			args = append(args, "%"+word+"%")
			p := fmt.Sprintf("$%d", len(args))
			clauses = append(clauses, fmt.Sprintf(
				"(description ILIKE %s OR transaction_type ILIKE %s OR mode ILIKE %s OR category ILIKE %s OR source_or_destination ILIKE %s)",
				p, p, p, p, p))
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	query += " ORDER BY created_at DESC"

	rows, err := dbFrom(ctx, r.Pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &t.TransactionType,
		&t.Mode, &t.Category, &t.SourceOrDestination, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
