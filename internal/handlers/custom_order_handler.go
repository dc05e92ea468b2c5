package handlers

import (
	"encoding/json"
	"net/http"

	"saraf-backend/internal/models"
	"saraf-backend/internal/services"
	"saraf-backend/internal/ws"
	"saraf-backend/pkg/respond"
)

type CustomOrderHandler struct {
	Service *services.CustomOrderService
	Ledger  services.LedgerStore
	Hub     *ws.Hub
}

func NewCustomOrderHandler(service *services.CustomOrderService, ledger services.LedgerStore, hub *ws.Hub) *CustomOrderHandler {
	return &CustomOrderHandler{Service: service, Ledger: ledger, Hub: hub}
}

func (h *CustomOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.CustomerOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Service.Create(r.Context(), userID, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusCreated, order)
}

func (h *CustomOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *CustomOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.Service.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *CustomOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req models.CustomerOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Service.Update(r.Context(), userID, id, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusOK, order)
}

func (h *CustomOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	balances, err := h.Service.Delete(r.Context(), userID, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	afterWrite(r.Context(), h.Hub, h.Ledger, userID)
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":      "Customer order deleted",
		"cash_balance": balances.Cash,
		"bank_balance": balances.Bank,
	})
}
