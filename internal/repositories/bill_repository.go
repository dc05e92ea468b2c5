package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRepository struct {
	Pool *pgxpool.Pool
}

func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{Pool: pool}
}

const billColumns = `id, user_id, customer_name, customer_phone_no, address, earlier_deposited_amount,
	items, return_items, amount, payment_mode, amount_paid, payment_status, payment_remaining,
	created_at, updated_at`

func (r *BillRepository) Create(ctx context.Context, b *models.Bill) error {
	items, returnItems, err := marshalBillLines(b)
	if err != nil {
		return err
	}

	return dbFrom(ctx, r.Pool).QueryRow(ctx,
		`INSERT INTO bills (user_id, customer_name, customer_phone_no, address, earlier_deposited_amount,
		   items, return_items, amount, payment_mode, amount_paid, payment_status, payment_remaining)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		b.UserID, b.CustomerName, b.CustomerPhoneNo, b.Address, b.EarlierDepositedAmount,
		items, returnItems, b.Amount, b.PaymentMode, b.AmountPaid, b.PaymentStatus, b.PaymentRemaining,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetForUser loads a bill scoped by owner. A bill owned by someone else
// is reported as not found, never as forbidden.
func (r *BillRepository) GetForUser(ctx context.Context, id, userID int) (*models.Bill, error) {
	row := dbFrom(ctx, r.Pool).QueryRow(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id=$1 AND user_id=$2`, id, userID)

	bill, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (r *BillRepository) Update(ctx context.Context, b *models.Bill) error {
	items, returnItems, err := marshalBillLines(b)
	if err != nil {
		return err
	}

	tag, err := dbFrom(ctx, r.Pool).Exec(ctx,
		`UPDATE bills SET customer_name=$1, customer_phone_no=$2, address=$3, earlier_deposited_amount=$4,
		   items=$5, return_items=$6, amount=$7, payment_mode=$8, amount_paid=$9, payment_status=$10,
		   payment_remaining=$11, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$12 AND user_id=$13`,
		b.CustomerName, b.CustomerPhoneNo, b.Address, b.EarlierDepositedAmount,
		items, returnItems, b.Amount, b.PaymentMode, b.AmountPaid, b.PaymentStatus,
		b.PaymentRemaining, b.ID, b.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *BillRepository) Delete(ctx context.Context, id, userID int) error {
	tag, err := dbFrom(ctx, r.Pool).Exec(ctx,
		`DELETE FROM bills WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *BillRepository) ListForUser(ctx context.Context, userID int) ([]*models.Bill, error) {
	return r.Search(ctx, userID, models.HistoryFilter{})
}

// Search fetches the owner's bills inside the optional date window,
// matching any query word against the bill's textual fields.
func (r *BillRepository) Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id=$1`
	args := []any{userID}
	query, args = appendDateWindow(query, args, f)

	if f.Query != "" {
		var clauses []string
		for _, word := range strings.Fields(f.Query) {
			args = append(args, "%"+word+"%")
			p := fmt.Sprintf("$%d", len(args))
			clauses = append(clauses, fmt.Sprintf(
				"(customer_name ILIKE %s OR customer_phone_no ILIKE %s OR address ILIKE %s OR items::text ILIKE %s OR return_items::text ILIKE %s)",
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

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

func marshalBillLines(b *models.Bill) ([]byte, []byte, error) {
	items := b.Items
	if items == nil {
		items = []models.BillItem{}
	}
	returnItems := b.ReturnItems
	if returnItems == nil {
		returnItems = []models.ReturnItem{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, nil, err
	}
	returnJSON, err := json.Marshal(returnItems)
	if err != nil {
		return nil, nil, err
	}
	return itemsJSON, returnJSON, nil
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	var b models.Bill
	var itemsJSON, returnJSON []byte

	err := row.Scan(&b.ID, &b.UserID, &b.CustomerName, &b.CustomerPhoneNo, &b.Address,
		&b.EarlierDepositedAmount, &itemsJSON, &returnJSON, &b.Amount, &b.PaymentMode,
		&b.AmountPaid, &b.PaymentStatus, &b.PaymentRemaining, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &b.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(returnJSON, &b.ReturnItems); err != nil {
		return nil, err
	}
	return &b, nil
}

// appendDateWindow adds created_at bounds shared by the three search queries.
func appendDateWindow(query string, args []any, f models.HistoryFilter) (string, []any) {
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}
