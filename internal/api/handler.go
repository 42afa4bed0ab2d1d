package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/allocation"
	"github.com/arthadash/artha/internal/asset"
	"github.com/arthadash/artha/internal/cash"
	"github.com/arthadash/artha/internal/domain"
	"github.com/arthadash/artha/internal/fx"
	"github.com/arthadash/artha/internal/history"
	"github.com/arthadash/artha/internal/portfolio"
)

// Handler provides the dashboard's HTTP endpoints.
type Handler struct {
	assets      *asset.Service
	cash        *cash.Service
	summary     *portfolio.Service
	allocations *allocation.Service
	rates       *fx.Service
	loc         *time.Location
}

// NewHandler creates the API handler. History dates are rendered in loc.
func NewHandler(assets *asset.Service, cashSvc *cash.Service, summary *portfolio.Service, allocations *allocation.Service, rates *fx.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		assets:      assets,
		cash:        cashSvc,
		summary:     summary,
		allocations: allocations,
		rates:       rates,
		loc:         loc,
	}
}

// GetSummary handles GET /api/v1/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.summary.Summary(r.Context())
	if err != nil {
		slog.Error("failed to compute summary", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetAllocation handles GET /api/v1/allocation.
func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	a, err := h.allocations.Allocations(r.Context())
	if err != nil {
		slog.Error("failed to compute allocation", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// historyItemResponse is a HistoryItem with its date rendered in the short
// display form the chart expects.
type historyItemResponse struct {
	ID      string          `json:"id"`
	Date    string          `json:"date"`
	Value   decimal.Decimal `json:"value"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Notes   string          `json:"notes,omitempty"`
	AssetID string          `json:"assetId,omitempty"`
}

// GetHistory handles GET /api/v1/history?range=...
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	rangeDesc := r.URL.Query().Get("range")
	if rangeDesc == "" {
		rangeDesc = "ALL"
	}

	items, err := h.assets.History(r.Context(), rangeDesc)
	if err != nil {
		slog.Error("failed to get history", "range", rangeDesc, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]historyItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, historyItemResponse{
			ID:      it.ID,
			Date:    history.DisplayDate(it.Date, h.loc),
			Value:   it.Value,
			Type:    string(it.Type),
			Amount:  it.Amount,
			Notes:   it.Notes,
			AssetID: it.AssetID,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRate handles GET /api/v1/rate.
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"usdIdr": h.rates.Rate()})
}

// RefreshRate handles POST /api/v1/rate/refresh. Refresh absorbs provider
// failures, so this always reports the rate in effect afterwards.
func (h *Handler) RefreshRate(w http.ResponseWriter, r *http.Request) {
	h.rates.Refresh(r.Context())
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"usdIdr": h.rates.Rate()})
}

type transactionRequest struct {
	Type    domain.HistoryType `json:"type"`
	Amount  decimal.Decimal    `json:"amount"`
	Notes   string             `json:"notes"`
	AssetID string             `json:"assetId"`
}

// AddTransaction handles POST /api/v1/transactions (manual ledger entries).
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.assets.AddTransaction(r.Context(), req.Type, req.Amount, req.Notes, req.AssetID)
	if err != nil {
		writeDomainError(w, err, "failed to add transaction")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateTransaction handles PUT /api/v1/transactions/{id}.
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.assets.UpdateTransaction(r.Context(), r.PathValue("id"), req.Type, req.Amount, req.Notes, req.AssetID)
	if err != nil {
		writeDomainError(w, err, "failed to update transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

// writeDomainError maps service errors onto HTTP statuses: missing records
// are 404, invalid input is 400, storage failures are a generic 500.
func writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, asset.ErrNotFound) || errors.Is(err, cash.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
