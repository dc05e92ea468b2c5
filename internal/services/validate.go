package services

import (
	"regexp"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"
)

var phoneRe = regexp.MustCompile(`^\d{10}$`)

func validateBill(req *models.BillRequest) error {
	if !phoneRe.MatchString(req.CustomerPhoneNo) {
		return apperr.Validation("customer_phone_no", "phone number must be exactly 10 digits")
	}
	if req.CustomerName == "" {
		return apperr.Validation("customer_name", "customer name is required")
	}
	if !req.PaymentMode.Valid() {
		return apperr.Validation("payment_mode", "must be cash or UPI")
	}
	if !req.PaymentStatus.Valid() {
		return apperr.Validation("payment_status", "must be paid, unpaid or partial")
	}
	if req.Amount < 0 {
		return apperr.Validation("amount", "must not be negative")
	}
	if req.AmountPaid < 0 {
		return apperr.Validation("amount_paid", "must not be negative")
	}
	if req.EarlierDepositedAmount < 0 {
		return apperr.Validation("earlier_deposited_amount", "must not be negative")
	}
	for _, item := range req.Items {
		if item.Kind != models.ItemKindCustomized && item.Kind != models.ItemKindReadyMade {
			return apperr.Validation("items", "item type must be customized or ready-made")
		}
	}
	for _, item := range req.ReturnItems {
		if item.Kind != models.MetalKindGold && item.Kind != models.MetalKindSilver {
			return apperr.Validation("return_items", "return item type must be gold or silver")
		}
	}
	return nil
}

func validateOrder(req *models.CustomerOrderRequest) error {
	if !phoneRe.MatchString(req.Phone) {
		return apperr.Validation("phone", "phone number must be exactly 10 digits")
	}
	if req.Name == "" {
		return apperr.Validation("name", "customer name is required")
	}
	if req.OrnamentName == "" {
		return apperr.Validation("ornament_name", "ornament name is required")
	}
	if req.WeightRange == "" {
		return apperr.Validation("weightrange", "weight range is required")
	}
	if req.ExpectedCompletionTime.IsZero() {
		return apperr.Validation("expectedCompletionTime", "expected completion time is required")
	}
	if req.AmountPrepaid < 0 {
		return apperr.Validation("amountPrepaid", "must not be negative")
	}
	// Payment type only matters once money actually moved.
	if req.AmountPrepaid > 0 && !req.PaymentType.Valid() {
		return apperr.Validation("paymentType", "must be cash or UPI")
	}
	if req.PaymentType != "" && !req.PaymentType.Valid() {
		return apperr.Validation("paymentType", "must be cash or UPI")
	}
	return nil
}

func validateTransaction(req *models.TransactionRequest) error {
	if !req.TransactionType.Valid() {
		return apperr.Validation("transaction_type", "must be inflow or outflow")
	}
	if !req.Mode.Valid() {
		return apperr.Validation("mode", "must be cash or UPI")
	}
	if !req.Category.Valid() {
		return apperr.Validation("category", "must be in-house or invoice")
	}
	if req.Amount <= 0 {
		return apperr.Validation("amount", "must be positive")
	}
	if req.Description == "" {
		return apperr.Validation("description", "description is required")
	}
	if req.SourceOrDestination == "" {
		return apperr.Validation("source_or_destination", "source or destination is required")
	}
	return nil
}
