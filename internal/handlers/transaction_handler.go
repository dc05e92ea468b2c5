package handlers

import (
	"encoding/json"
	"net/http"

	"saraf-backend/internal/models"
	"saraf-backend/internal/services"
	"saraf-backend/internal/ws"
	"saraf-backend/pkg/respond"
)

type TransactionHandler struct {
	Service *services.TransactionService
	Ledger  services.LedgerStore
	Hub     *ws.Hub
}

func NewTransactionHandler(service *services.TransactionService, ledger services.LedgerStore, hub *ws.Hub) *TransactionHandler {
	return &TransactionHandler{Service: service, Ledger: ledger, Hub: hub}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.Service.Create(r.Context(), userID, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusCreated, txn)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	txn, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	txns, err := h.Service.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, txns)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn, err := h.Service.Update(r.Context(), userID, id, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	balances, err := h.Service.Delete(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":      "Transaction deleted",
		"cash_balance": balances.Cash,
		"bank_balance": balances.Bank,
	})
}
