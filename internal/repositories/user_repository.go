package repositories

import (
	"context"
	"errors"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	Pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return dbFrom(ctx, r.Pool).QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash)
         VALUES($1, $2, $3)
         RETURNING id, cash_balance, bank_balance, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CashBalance, &u.BankBalance, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := dbFrom(ctx, r.Pool).QueryRow(ctx,
		`SELECT id, username, email, password_hash, cash_balance, bank_balance, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CashBalance, &user.BankBalance, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := dbFrom(ctx, r.Pool).QueryRow(ctx,
		`SELECT id, username, email, password_hash, cash_balance, bank_balance, created_at, updated_at
         FROM users WHERE email=$1`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.CashBalance, &user.BankBalance, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
