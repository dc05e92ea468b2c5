package models

import "time"

// TransactionType says which way the money moved.
type TransactionType string

const (
	TransactionInflow  TransactionType = "inflow"
	TransactionOutflow TransactionType = "outflow"
)

func (t TransactionType) Valid() bool {
	return t == TransactionInflow || t == TransactionOutflow
}

// TransactionCategory groups standalone movements for reporting.
type TransactionCategory string

const (
	CategoryInHouse TransactionCategory = "in-house"
	CategoryInvoice TransactionCategory = "invoice"
)

func (c TransactionCategory) Valid() bool {
	return c == CategoryInHouse || c == CategoryInvoice
}

// Transaction is a standalone cash/bank movement not tied to a sale.
type Transaction struct {
	ID                  int                 `json:"id"`
	UserID              int                 `json:"user_id"`
	Amount              float64             `json:"amount"`
	Description         string              `json:"description"`
	TransactionType     TransactionType     `json:"transaction_type"`
	Mode                PaymentMode         `json:"mode"`
	Category            TransactionCategory `json:"category"`
	SourceOrDestination string              `json:"source_or_destination"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// Delta is the signed amount applied to the mode's channel: positive for
// inflow, negative for outflow.
func (t *Transaction) Delta() float64 {
	if t.TransactionType == TransactionOutflow {
		return -t.Amount
	}
	return t.Amount
}

// TransactionRequest is the payload for creating or replacing a transaction.
type TransactionRequest struct {
	Amount              float64             `json:"amount"`
	Description         string              `json:"description"`
	TransactionType     TransactionType     `json:"transaction_type"`
	Mode                PaymentMode         `json:"mode"`
	Category            TransactionCategory `json:"category"`
	SourceOrDestination string              `json:"source_or_destination"`
}

func (r *TransactionRequest) ToTransaction(userID int) *Transaction {
	return &Transaction{
		UserID:              userID,
		Amount:              r.Amount,
		Description:         r.Description,
		TransactionType:     r.TransactionType,
		Mode:                r.Mode,
		Category:            r.Category,
		SourceOrDestination: r.SourceOrDestination,
	}
}
