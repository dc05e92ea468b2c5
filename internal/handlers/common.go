package handlers

import (
	"context"
	"net/http"
	"strconv"

	"saraf-backend/internal/cache"
	"saraf-backend/internal/middleware"
	"saraf-backend/internal/services"
	"saraf-backend/internal/ws"

	"github.com/gorilla/mux"
)

// requireUser pulls the authenticated user id out of the context. The
// auth middleware guarantees it is present on /api routes.
func requireUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// afterWrite clears the user's cached history pages and pushes the
// fresh balance snapshot to any open sockets. Best effort on both.
func afterWrite(ctx context.Context, hub *ws.Hub, ledger services.LedgerStore, userID int) {
	cache.InvalidateUserHistory(ctx, userID)
	if hub == nil || ledger == nil {
		return
	}
	balances, err := ledger.Balances(ctx, userID)
	if err != nil {
		return
	}
	hub.PushBalances(userID, balances)
}
