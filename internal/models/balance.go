package models

// Channel is one of the two balance buckets every user carries.
type Channel string

const (
	ChannelCash Channel = "cash"
	ChannelBank Channel = "bank"
)

// PaymentMode is how money changed hands. Cash settles against the
// cash balance, UPI against the bank balance.
type PaymentMode string

const (
	ModeCash PaymentMode = "cash"
	ModeUPI  PaymentMode = "UPI"
)

func (m PaymentMode) Valid() bool {
	return m == ModeCash || m == ModeUPI
}

// Channel maps the mode onto the balance bucket it settles against.
func (m PaymentMode) Channel() Channel {
	if m == ModeUPI {
		return ChannelBank
	}
	return ChannelCash
}

// Balances is a point-in-time snapshot of a user's two buckets.
type Balances struct {
	Cash float64 `json:"cash_balance"`
	Bank float64 `json:"bank_balance"`
}
