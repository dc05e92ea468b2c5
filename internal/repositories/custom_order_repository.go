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

type CustomOrderRepository struct {
	Pool *pgxpool.Pool
}

func NewCustomOrderRepository(pool *pgxpool.Pool) *CustomOrderRepository {
	return &CustomOrderRepository{Pool: pool}
}

const orderColumns = `id, user_id, name, phone, address, ornament_name, weightrange, rate,
	description, amount_prepaid, payment_type, expected_completion_time, budget, created_at, updated_at`

func (r *CustomOrderRepository) Create(ctx context.Context, o *models.CustomerOrder) error {
	return dbFrom(ctx, r.Pool).QueryRow(ctx,
		`INSERT INTO customer_orders (user_id, name, phone, address, ornament_name, weightrange,
		   rate, description, amount_prepaid, payment_type, expected_completion_time, budget)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		o.UserID, o.Name, o.Phone, o.Address, o.OrnamentName, o.WeightRange,
		o.Rate, o.Description, o.AmountPrepaid, o.PaymentType, o.ExpectedCompletionTime, o.Budget,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *CustomOrderRepository) GetForUser(ctx context.Context, id, userID int) (*models.CustomerOrder, error) {
	row := dbFrom(ctx, r.Pool).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM customer_orders WHERE id=$1 AND user_id=$2`, id, userID)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *CustomOrderRepository) Update(ctx context.Context, o *models.CustomerOrder) error {
	tag, err := dbFrom(ctx, r.Pool).Exec(ctx,
		`UPDATE customer_orders SET name=$1, phone=$2, address=$3, ornament_name=$4, weightrange=$5,
		   rate=$6, description=$7, amount_prepaid=$8, payment_type=$9, expected_completion_time=$10,
		   budget=$11, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$12 AND user_id=$13`,
		o.Name, o.Phone, o.Address, o.OrnamentName, o.WeightRange,
		o.Rate, o.Description, o.AmountPrepaid, o.PaymentType, o.ExpectedCompletionTime,
		o.Budget, o.ID, o.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *CustomOrderRepository) Delete(ctx context.Context, id, userID int) error {
	tag, err := dbFrom(ctx, r.Pool).Exec(ctx,
		`DELETE FROM customer_orders WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *CustomOrderRepository) ListForUser(ctx context.Context, userID int) ([]*models.CustomerOrder, error) {
	return r.Search(ctx, userID, models.HistoryFilter{})
}

func (r *CustomOrderRepository) Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.CustomerOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM customer_orders WHERE user_id=$1`
	args := []any{userID}
	query, args = appendDateWindow(query, args, f)

	if f.Query != "" {
		var clauses []string
		for _, word := range strings.Fields(f.Query) {
			args = append(args, "%"+word+"%")
			p := fmt.Sprintf("$%d", len(args))
			clauses = append(clauses, fmt.Sprintf(
				"(name ILIKE %s OR phone ILIKE %s OR address ILIKE %s OR ornament_name ILIKE %s OR weightrange ILIKE %s OR description ILIKE %s)",
				p, p, p, p, p, p))
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	query += " ORDER BY created_at DESC"

	rows, err := dbFrom(ctx, r.Pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.CustomerOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*models.CustomerOrder, error) {
	var o models.CustomerOrder
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.Phone, &o.Address, &o.OrnamentName,
		&o.WeightRange, &o.Rate, &o.Description, &o.AmountPrepaid, &o.PaymentType,
		&o.ExpectedCompletionTime, &o.Budget, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
