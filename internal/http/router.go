package http

import (
	"net/http"

	"saraf-backend/internal/handlers"
	"saraf-backend/internal/middleware"
	"saraf-backend/internal/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	billHandler *handlers.BillHandler,
	orderHandler *handlers.CustomOrderHandler,
	transactionHandler *handlers.TransactionHandler,
	historyHandler *handlers.HistoryHandler,
	backupHandler *handlers.BackupHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	hub *ws.Hub,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Razorpay webhook (signed, not bearer-authenticated)
	r.HandleFunc("/webhooks/razorpay", razorpayHandler.Webhook).Methods("POST")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Bills
	api.HandleFunc("/bills", billHandler.List).Methods("GET")
	api.HandleFunc("/bills", billHandler.Create).Methods("POST")
	api.HandleFunc("/bills/{id}", billHandler.Get).Methods("GET")
	api.HandleFunc("/bills/{id}", billHandler.Update).Methods("PUT")
	api.HandleFunc("/bills/{id}", billHandler.Delete).Methods("DELETE")
	api.HandleFunc("/bills/{id}/receipt", billHandler.Receipt).Methods("GET")
	api.HandleFunc("/bills/{id}/payment-link", billHandler.PaymentLink).Methods("POST")

	// Customer orders
	api.HandleFunc("/customer-orders", orderHandler.List).Methods("GET")
	api.HandleFunc("/customer-orders", orderHandler.Create).Methods("POST")
	api.HandleFunc("/customer-orders/{id}", orderHandler.Get).Methods("GET")
	api.HandleFunc("/customer-orders/{id}", orderHandler.Update).Methods("PUT")
	api.HandleFunc("/customer-orders/{id}", orderHandler.Delete).Methods("DELETE")

	// Transactions
	api.HandleFunc("/transactions", transactionHandler.List).Methods("GET")
	api.HandleFunc("/transactions", transactionHandler.Create).Methods("POST")
	api.HandleFunc("/transactions/{id}", transactionHandler.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}", transactionHandler.Update).Methods("PUT")
	api.HandleFunc("/transactions/{id}", transactionHandler.Delete).Methods("DELETE")

	// Merged history feed
	api.HandleFunc("/history", historyHandler.Query).Methods("GET")

	// Backups
	api.HandleFunc("/backups", backupHandler.List).Methods("GET")
	api.HandleFunc("/backups", backupHandler.Export).Methods("POST")

	// Balance push socket
	api.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		hub.HandleWS(w, r, userID)
	}).Methods("GET")

	return r
}
