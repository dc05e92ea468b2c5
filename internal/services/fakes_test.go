package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/models"
)

// passTx runs the function directly. The pg implementation wraps calls
// in one transaction; for the in-memory fakes that is a no-op.
type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// revertTx snapshots the fake ledger before fn and restores it when fn
// fails, mimicking a rollback.
type revertTx struct {
	ledger *fakeLedger
}

func (t revertTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	cash, bank := t.ledger.cash, t.ledger.bank
	if err := fn(ctx); err != nil {
		t.ledger.cash, t.ledger.bank = cash, bank
		return err
	}
	return nil
}

type appliedDelta struct {
	channel models.Channel
	delta   float64
}

type fakeLedger struct {
	cash, bank float64
	applied    []appliedDelta
}

func (l *fakeLedger) ApplyDelta(ctx context.Context, userID int, channel models.Channel, delta float64) (models.Balances, error) {
	if channel == models.ChannelBank {
		l.bank += delta
	} else {
		l.cash += delta
	}
	l.applied = append(l.applied, appliedDelta{channel: channel, delta: delta})
	return models.Balances{Cash: l.cash, Bank: l.bank}, nil
}

func (l *fakeLedger) Balances(ctx context.Context, userID int) (models.Balances, error) {
	return models.Balances{Cash: l.cash, Bank: l.bank}, nil
}

var errStoreDown = errors.New("store unavailable")

type fakeBillStore struct {
	bills  map[int]*models.Bill
	nextID int
	failOn string
}

func newFakeBillStore() *fakeBillStore {
	return &fakeBillStore{bills: make(map[int]*models.Bill)}
}

func (s *fakeBillStore) Create(ctx context.Context, b *models.Bill) error {
	if s.failOn == "create" {
		return errStoreDown
	}
	s.nextID++
	b.ID = s.nextID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	cp := *b
	s.bills[b.ID] = &cp
	return nil
}

func (s *fakeBillStore) GetForUser(ctx context.Context, id, userID int) (*models.Bill, error) {
	b, ok := s.bills[id]
	if !ok || b.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBillStore) Update(ctx context.Context, b *models.Bill) error {
	if s.failOn == "update" {
		return errStoreDown
	}
	if _, ok := s.bills[b.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *b
	s.bills[b.ID] = &cp
	return nil
}

func (s *fakeBillStore) Delete(ctx context.Context, id, userID int) error {
	b, ok := s.bills[id]
	if !ok || b.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

func (s *fakeBillStore) ListForUser(ctx context.Context, userID int) ([]*models.Bill, error) {
	var out []*models.Bill
	for _, b := range s.bills {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeBillStore) Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.Bill, error) {
	var out []*models.Bill
	for _, b := range s.bills {
		if b.UserID != userID || !inWindow(b.CreatedAt, f) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(b.CustomerName), strings.ToLower(f.Query)) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderStore struct {
	orders map[int]*models.CustomerOrder
	nextID int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[int]*models.CustomerOrder)}
}

func (s *fakeOrderStore) Create(ctx context.Context, o *models.CustomerOrder) error {
	s.nextID++
	o.ID = s.nextID
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeOrderStore) GetForUser(ctx context.Context, id, userID int) (*models.CustomerOrder, error) {
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOrderStore) Update(ctx context.Context, o *models.CustomerOrder) error {
	if _, ok := s.orders[o.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeOrderStore) Delete(ctx context.Context, id, userID int) error {
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *fakeOrderStore) ListForUser(ctx context.Context, userID int) ([]*models.CustomerOrder, error) {
	var out []*models.CustomerOrder
	for _, o := range s.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.CustomerOrder, error) {
	var out []*models.CustomerOrder
	for _, o := range s.orders {
		if o.UserID != userID || !inWindow(o.CreatedAt, f) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(o.Name), strings.ToLower(f.Query)) {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTransactionStore struct {
	txns   map[int]*models.Transaction
	nextID int
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{txns: make(map[int]*models.Transaction)}
}

func (s *fakeTransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	s.nextID++
	t.ID = s.nextID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	s.txns[t.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) GetForUser(ctx context.Context, id, userID int) (*models.Transaction, error) {
	t, ok := s.txns[id]
	if !ok || t.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTransactionStore) Update(ctx context.Context, t *models.Transaction) error {
	if _, ok := s.txns[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *t
	s.txns[t.ID] = &cp
	return nil
}

func (s *fakeTransactionStore) Delete(ctx context.Context, id, userID int) error {
	t, ok := s.txns[id]
	if !ok || t.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.txns, id)
	return nil
}

func (s *fakeTransactionStore) ListForUser(ctx context.Context, userID int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range s.txns {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeTransactionStore) Search(ctx context.Context, userID int, f models.HistoryFilter) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range s.txns {
		if t.UserID != userID || !inWindow(t.CreatedAt, f) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Query)) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

type fakeUserStore struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func inWindow(at time.Time, f models.HistoryFilter) bool {
	if f.StartDate != nil && at.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && at.After(*f.EndDate) {
		return false
	}
	return true
}
