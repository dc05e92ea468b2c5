package models

import "time"

// ItemKind classifies a sold ornament.
type ItemKind string

const (
	ItemKindCustomized ItemKind = "customized"
	ItemKindReadyMade  ItemKind = "ready-made"
)

// MetalKind classifies old metal a customer returns against a purchase.
type MetalKind string

const (
	MetalKindGold   MetalKind = "gold"
	MetalKindSilver MetalKind = "silver"
)

// PaymentStatus tracks how much of a bill has been settled.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusUnpaid || s == PaymentStatusPartial
}

// BillItem is one ornament line on a sale bill.
type BillItem struct {
	Name          string   `json:"name"`
	Kind          ItemKind `json:"type"`
	Weight        float64  `json:"weight"`
	Purity        float64  `json:"purity"`
	Rate          float64  `json:"rate"`
	MakingCharges float64  `json:"making_charges"`
	Price         float64  `json:"price"`
}

// ReturnItem is old gold/silver taken back from the customer and
// deducted from the bill amount.
type ReturnItem struct {
	Name        string    `json:"name"`
	Kind        MetalKind `json:"type"`
	Weight      float64   `json:"weight"`
	Purity      float64   `json:"purity"`
	Rate        float64   `json:"rate"`
	ReturnPrice float64   `json:"return_price"`
}

// Bill is a sale. AmountPaid is the only field that moves the owner's
// balances; PaymentRemaining is denormalized at write time.
type Bill struct {
	ID                     int          `json:"id"`
	UserID                 int          `json:"user_id"`
	CustomerName           string       `json:"customer_name"`
	CustomerPhoneNo        string       `json:"customer_phone_no"`
	Address                string       `json:"address"`
	EarlierDepositedAmount float64      `json:"earlier_deposited_amount"`
	Items                  []BillItem   `json:"items"`
	ReturnItems            []ReturnItem `json:"return_items"`
	Amount                 float64      `json:"amount"`
	PaymentMode            PaymentMode  `json:"payment_mode"`
	AmountPaid             float64      `json:"amount_paid"`
	PaymentStatus          PaymentStatus `json:"payment_status"`
	PaymentRemaining       float64      `json:"payment_remaining"`
	CreatedAt              time.Time    `json:"createdAt"`
	UpdatedAt              time.Time    `json:"updatedAt"`
}

// PaymentLinkResponse is returned after issuing a Razorpay payment
// link for a bill's remaining amount.
type PaymentLinkResponse struct {
	BillID   int     `json:"bill_id"`
	LinkID   string  `json:"link_id"`
	ShortURL string  `json:"short_url"`
	Amount   float64 `json:"amount"`
}

// BillRequest is the payload for creating or replacing a bill.
type BillRequest struct {
	CustomerName           string        `json:"customer_name"`
	CustomerPhoneNo        string        `json:"customer_phone_no"`
	Address                string        `json:"address"`
	EarlierDepositedAmount float64       `json:"earlier_deposited_amount"`
	Items                  []BillItem    `json:"items"`
	ReturnItems            []ReturnItem  `json:"return_items"`
	Amount                 float64       `json:"amount"`
	PaymentMode            PaymentMode   `json:"payment_mode"`
	AmountPaid             float64       `json:"amount_paid"`
	PaymentStatus          PaymentStatus `json:"payment_status"`
}

// ToBill builds the persisted record, computing payment_remaining.
func (r *BillRequest) ToBill(userID int) *Bill {
	return &Bill{
		UserID:                 userID,
		CustomerName:           r.CustomerName,
		CustomerPhoneNo:        r.CustomerPhoneNo,
		Address:                r.Address,
		EarlierDepositedAmount: r.EarlierDepositedAmount,
		Items:                  r.Items,
		ReturnItems:            r.ReturnItems,
		Amount:                 r.Amount,
		PaymentMode:            r.PaymentMode,
		AmountPaid:             r.AmountPaid,
		PaymentStatus:          r.PaymentStatus,
		PaymentRemaining:       r.Amount - r.AmountPaid,
	}
}
