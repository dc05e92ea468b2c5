package models

import "time"

// CustomerOrder is a bespoke ornament order taken with an optional
// prepayment. Only AmountPrepaid moves the owner's balances; a zero
// prepayment never touches the ledger, on create, update or delete.
type CustomerOrder struct {
	ID                     int         `json:"id"`
	UserID                 int         `json:"user_id"`
	Name                   string      `json:"name"`
	Phone                  string      `json:"phone"`
	Address                string      `json:"address"`
	OrnamentName           string      `json:"ornament_name"`
	WeightRange            string      `json:"weightrange"`
	Rate                   float64     `json:"rate"`
	Description            string      `json:"description"`
	AmountPrepaid          float64     `json:"amountPrepaid"`
	PaymentType            PaymentMode `json:"paymentType"`
	ExpectedCompletionTime time.Time   `json:"expectedCompletionTime"`
	Budget                 float64     `json:"budget"`
	CreatedAt              time.Time   `json:"createdAt"`
	UpdatedAt              time.Time   `json:"updatedAt"`
}

// Delta is the signed amount the order contributed to its payment channel.
func (o *CustomerOrder) Delta() float64 {
	return o.AmountPrepaid
}

// CustomerOrderRequest is the payload for creating or replacing an order.
type CustomerOrderRequest struct {
	Name                   string      `json:"name"`
	Phone                  string      `json:"phone"`
	Address                string      `json:"address"`
	OrnamentName           string      `json:"ornament_name"`
	WeightRange            string      `json:"weightrange"`
	Rate                   float64     `json:"rate"`
	Description            string      `json:"description"`
	AmountPrepaid          float64     `json:"amountPrepaid"`
	PaymentType            PaymentMode `json:"paymentType"`
	ExpectedCompletionTime time.Time   `json:"expectedCompletionTime"`
	Budget                 float64     `json:"budget"`
}

func (r *CustomerOrderRequest) ToOrder(userID int) *CustomerOrder {
	return &CustomerOrder{
		UserID:                 userID,
		Name:                   r.Name,
		Phone:                  r.Phone,
		Address:                r.Address,
		OrnamentName:           r.OrnamentName,
		WeightRange:            r.WeightRange,
		Rate:                   r.Rate,
		Description:            r.Description,
		AmountPrepaid:          r.AmountPrepaid,
		PaymentType:            r.PaymentType,
		ExpectedCompletionTime: r.ExpectedCompletionTime,
		Budget:                 r.Budget,
	}
}
