package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"saraf-backend/internal/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// balanceEvent is what connected clients receive after any write that
// touched the owner's balances.
type balanceEvent struct {
	Type        string  `json:"type"`
	CashBalance float64 `json:"cash_balance"`
	BankBalance float64 `json:"bank_balance"`
	At          string  `json:"at"`
}

// Hub tracks open sockets per user and pushes balance snapshots to
// them. Slow or dead clients are dropped on write failure.
type Hub struct {
	mu      sync.Mutex
	clients map[int]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int]map[*websocket.Conn]bool)}
}

// HandleWS upgrades the request and parks the connection until the
// client goes away. The read loop only exists to observe the close.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients[userID], conn)
		if len(h.clients[userID]) == 0 {
			delete(h.clients, userID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PushBalances sends the latest snapshot to every socket the user has
// open. Safe to call with no connected clients.
func (h *Hub) PushBalances(userID int, balances models.Balances) {
	payload, err := json.Marshal(balanceEvent{
		Type:        "balances",
		CashBalance: balances.Cash,
		BankBalance: balances.Bank,
		At:          time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients[userID], conn)
		}
	}
}
