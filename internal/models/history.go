package models

import (
	"encoding/json"
	"time"
)

// Record kind tags used in the merged history feed.
const (
	HistoryKindBill        = "bill"
	HistoryKindOrder       = "customerOrder"
	HistoryKindTransaction = "transaction"
)

// HistoryFilter narrows the merged feed. StartDate/EndDate are expected
// to already be pinned to start/end of day by the caller.
type HistoryFilter struct {
	Query     string
	Kind      string
	StartDate *time.Time
	EndDate   *time.Time
	Skip      int
	Limit     int
}

// HistoryEntry is one record in the merged feed, tagged with its kind.
// It marshals as the record's own fields plus a "type" field, which is
// the shape the history page consumes.
type HistoryEntry struct {
	Kind      string
	CreatedAt time.Time
	Record    any
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Record)
	if err != nil {
		return nil, err
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	flat["type"] = e.Kind
	return json.Marshal(flat)
}

// HistoryResult is the paginated slice plus the pre-slice total and the
// owner's current balances.
type HistoryResult struct {
	TotalCount  int            `json:"totalCount"`
	Data        []HistoryEntry `json:"data"`
	CashBalance float64        `json:"cash_balance"`
	BankBalance float64        `json:"bank_balance"`
}
