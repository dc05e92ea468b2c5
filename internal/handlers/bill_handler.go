package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"saraf-backend/internal/models"
	"saraf-backend/internal/services"
	"saraf-backend/internal/ws"
	"saraf-backend/pkg/respond"
)

type BillHandler struct {
	Service  *services.BillService
	Receipts *services.ReceiptService
	Links    *services.PaymentLinkService
	Ledger   services.LedgerStore
	Hub      *ws.Hub
}

func NewBillHandler(service *services.BillService, receipts *services.ReceiptService, links *services.PaymentLinkService, ledger services.LedgerStore, hub *ws.Hub) *BillHandler {
	return &BillHandler{Service: service, Receipts: receipts, Links: links, Ledger: ledger, Hub: hub}
}

func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Service.Create(r.Context(), userID, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusCreated, bill)
}

func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	bill, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, bill)
}

func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bills, err := h.Service.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, bills)
}

func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	var req models.BillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Service.Update(r.Context(), userID, id, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusOK, bill)
}

func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	balances, err := h.Service.Delete(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":      "Bill deleted",
		"cash_balance": balances.Cash,
		"bank_balance": balances.Bank,
	})
}

// Receipt streams the bill as a printable PDF.
func (h *BillHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	bill, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	pdf, err := h.Receipts.GenerateBillReceipt(bill)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bill-%d.pdf"`, bill.ID))
	w.Write(pdf)
}

// PaymentLink issues a Razorpay payment link for the bill's remaining
// amount.
func (h *BillHandler) PaymentLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	bill, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	link, err := h.Links.CreateBillPaymentLink(r.Context(), bill)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, link)
}
