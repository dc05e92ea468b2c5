package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"saraf-backend/internal/services"
)

type RazorpayHandler struct {
	Service *services.PaymentLinkService
}

func NewRazorpayHandler(service *services.PaymentLinkService) *RazorpayHandler {
	return &RazorpayHandler{Service: service}
}

// Webhook receives Razorpay events. Unsigned or badly signed payloads
// are rejected before any parsing.
// POST /webhooks/razorpay
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Razorpay] webhook signature mismatch")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	var event struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "Invalid webhook body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), event.Event, event.Payload); err != nil {
		log.Printf("[Razorpay] webhook processing failed: %v", err)
		http.Error(w, "Webhook processing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
