package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"saraf-backend/internal/auth"
	"saraf-backend/internal/backup"
	"saraf-backend/internal/cache"
	"saraf-backend/internal/config"
	"saraf-backend/internal/database"
	"saraf-backend/internal/db"
	"saraf-backend/internal/handlers"
	"saraf-backend/internal/health"
	h "saraf-backend/internal/http"
	"saraf-backend/internal/middleware"
	"saraf-backend/internal/repositories"
	"saraf-backend/internal/services"
	"saraf-backend/internal/ws"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to Postgres
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (history pages served from Postgres)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	txManager := repositories.NewTxManager(pool)
	userRepo := repositories.NewUserRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)
	billRepo := repositories.NewBillRepository(pool)
	orderRepo := repositories.NewCustomOrderRepository(pool)
	transactionRepo := repositories.NewTransactionRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	billService := services.NewBillService(txManager, billRepo, ledgerRepo)
	orderService := services.NewCustomOrderService(txManager, orderRepo, ledgerRepo)
	transactionService := services.NewTransactionService(txManager, transactionRepo, ledgerRepo)
	historyService := services.NewHistoryService(billRepo, orderRepo, transactionRepo, ledgerRepo)
	receiptService := services.NewReceiptService(cfg)
	paymentLinkService := services.NewPaymentLinkService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		transactionService,
	)
	exporter := backup.NewExporter(cfg, billRepo, orderRepo, transactionRepo, ledgerRepo)

	// Balance push hub
	hub := ws.NewHub()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	billHandler := handlers.NewBillHandler(billService, receiptService, paymentLinkService, ledgerRepo, hub)
	orderHandler := handlers.NewCustomOrderHandler(orderService, ledgerRepo, hub)
	transactionHandler := handlers.NewTransactionHandler(transactionService, ledgerRepo, hub)
	historyHandler := handlers.NewHistoryHandler(historyService)
	backupHandler := handlers.NewBackupHandler(exporter)
	razorpayHandler := handlers.NewRazorpayHandler(paymentLinkService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		billHandler,
		orderHandler,
		transactionHandler,
		historyHandler,
		backupHandler,
		razorpayHandler,
		healthHandler,
		authMiddleware,
		hub,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
