package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentLinkService issues Razorpay payment links for the unpaid part
// of a bill and records the settlement as an inflow when the link is
// paid.
type PaymentLinkService struct {
	keyID         string
	keySecret     string
	webhookSecret string
	transactions  *TransactionService
}

func NewPaymentLinkService(keyID, keySecret, webhookSecret string, transactions *TransactionService) *PaymentLinkService {
	return &PaymentLinkService{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		transactions:  transactions,
	}
}

func (s *PaymentLinkService) getClient() *razorpay.Client {
	if s.keyID == "" || s.keySecret == "" {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// CreateBillPaymentLink creates a Razorpay payment link for the bill's
// remaining amount. The owner and bill ids travel in the link notes so
// the webhook can attribute the settlement.
func (s *PaymentLinkService) CreateBillPaymentLink(ctx context.Context, bill *models.Bill) (*models.PaymentLinkResponse, error) {
	if bill.PaymentRemaining <= 0 {
		return nil, apperr.Validation("payment_remaining", "bill has no remaining amount to collect")
	}

	client := s.getClient()
	if client == nil {
		return nil, fmt.Errorf("razorpay client not configured")
	}

	// Razorpay amounts are in paise
	amountPaise := int(bill.PaymentRemaining*100 + 0.5)

	linkData := map[string]interface{}{
		"amount":       amountPaise,
		"currency":     "INR",
		"description":  fmt.Sprintf("Remaining payment for bill #%d", bill.ID),
		"reference_id": fmt.Sprintf("bill_%d", bill.ID),
		"customer": map[string]interface{}{
			"name":    bill.CustomerName,
			"contact": bill.CustomerPhoneNo,
		},
		"notify": map[string]interface{}{
			"sms": true,
		},
		"notes": map[string]interface{}{
			"user_id": strconv.Itoa(bill.UserID),
			"bill_id": strconv.Itoa(bill.ID),
		},
	}

	link, err := client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	resp := &models.PaymentLinkResponse{
		BillID: bill.ID,
		Amount: bill.PaymentRemaining,
	}
	if id, ok := link["id"].(string); ok {
		resp.LinkID = id
	}
	if url, ok := link["short_url"].(string); ok {
		resp.ShortURL = url
	}
	return resp, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against
// the raw request body.
func (s *PaymentLinkService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook handles payment link events. A paid link becomes a
// bank inflow attributed to the bill's owner.
func (s *PaymentLinkService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "payment_link.paid":
		return s.handleLinkPaid(ctx, payload)
	default:
		log.Printf("[Razorpay] Unhandled webhook event: %s", event)
		return nil
	}
}

func (s *PaymentLinkService) handleLinkPaid(ctx context.Context, payload map[string]interface{}) error {
	linkEntity, ok := payload["payment_link"].(map[string]interface{})
	if !ok {
		linkEntity = payload
	}
	entity, ok := linkEntity["entity"].(map[string]interface{})
	if !ok {
		entity = linkEntity
	}

	notes, _ := entity["notes"].(map[string]interface{})
	userID := noteInt(notes, "user_id")
	billID := noteInt(notes, "bill_id")
	if userID == 0 || billID == 0 {
		return fmt.Errorf("missing user_id or bill_id in payment link notes")
	}

	amountPaise, _ := entity["amount_paid"].(float64)
	if amountPaise == 0 {
		amountPaise, _ = entity["amount"].(float64)
	}
	amount := amountPaise / 100
	if amount <= 0 {
		return fmt.Errorf("invalid amount in payment link webhook")
	}

	linkID, _ := entity["id"].(string)
	_, err := s.transactions.Create(ctx, userID, &models.TransactionRequest{
		Amount:              amount,
		Description:         fmt.Sprintf("Payment link settlement for bill #%d | Link: %s", billID, linkID),
		TransactionType:     models.TransactionInflow,
		Mode:                models.ModeUPI,
		Category:            models.CategoryInvoice,
		SourceOrDestination: "Razorpay",
	})
	return err
}

func noteInt(notes map[string]interface{}, key string) int {
	raw, ok := notes[key]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case string:
		n, _ := strconv.Atoi(v)
		return n
	case float64:
		return int(v)
	}
	return 0
}
