package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"saraf-backend/internal/apperr"
	"saraf-backend/internal/cache"
	"saraf-backend/internal/models"
	"saraf-backend/internal/services"
	"saraf-backend/internal/timeutil"
	"saraf-backend/pkg/respond"
)

type HistoryHandler struct {
	Service *services.HistoryService
}

func NewHistoryHandler(service *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

// Query serves the merged history feed. Pages are cached briefly in
// Redis; any write to the user's records invalidates them.
func (h *HistoryHandler) Query(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	filter, err := parseHistoryFilter(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	key := cache.HistoryKey(userID, historyFingerprint(filter))
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	result, err := h.Service.Query(r.Context(), userID, filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		respond.Error(w, err)
		return
	}
	cache.CacheHistory(r.Context(), key, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func parseHistoryFilter(r *http.Request) (models.HistoryFilter, error) {
	q := r.URL.Query()

	filter := models.HistoryFilter{
		Query: q.Get("query"),
		Kind:  q.Get("type"),
	}

	if raw := q.Get("startDate"); raw != "" {
		t, err := timeutil.ParseInIST(timeutil.DateLayout, raw)
		if err != nil {
			return filter, apperr.Validation("startDate", "must be in YYYY-MM-DD format")
		}
		start := timeutil.StartOfDay(t)
		filter.StartDate = &start
	}
	if raw := q.Get("endDate"); raw != "" {
		t, err := timeutil.ParseInIST(timeutil.DateLayout, raw)
		if err != nil {
			return filter, apperr.Validation("endDate", "must be in YYYY-MM-DD format")
		}
		end := timeutil.EndOfDay(t)
		filter.EndDate = &end
	}

	if raw := q.Get("skip"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Skip = n
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter.Limit = n
		}
	}

	return filter, nil
}

func historyFingerprint(f models.HistoryFilter) string {
	start, end := "", ""
	if f.StartDate != nil {
		start = f.StartDate.Format(timeutil.DateLayout)
	}
	if f.EndDate != nil {
		end = f.EndDate.Format(timeutil.DateLayout)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%d|%d", f.Query, f.Kind, start, end, f.Skip, f.Limit)
}
