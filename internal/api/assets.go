package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/asset"
	"github.com/arthadash/artha/internal/domain"
)

type assetRequest struct {
	Symbol       string               `json:"symbol"`
	Name         string               `json:"name"`
	Category     domain.AssetCategory `json:"category"`
	Quantity     decimal.Decimal      `json:"quantity"`
	AvgPrice     decimal.Decimal      `json:"avgPrice"`
	CurrentPrice decimal.Decimal      `json:"currentPrice"`
	Currency     domain.Currency      `json:"currency"`
}

func (r assetRequest) asset(id string) domain.Asset {
	return domain.Asset{
		ID:           id,
		Symbol:       r.Symbol,
		Name:         r.Name,
		Category:     r.Category,
		Quantity:     r.Quantity,
		AvgPrice:     r.AvgPrice,
		CurrentPrice: r.CurrentPrice,
		Currency:     r.Currency,
	}
}

// ListAssets handles GET /api/v1/assets.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assets.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list assets")
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// AddAsset handles POST /api/v1/assets.
func (h *Handler) AddAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.assets.Add(r.Context(), req.asset(""))
	if err != nil {
		writeDomainError(w, err, "failed to add asset")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// UpdateAsset handles PUT /api/v1/assets/{id}.
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.assets.Update(r.Context(), req.asset(r.PathValue("id"))); err != nil {
		writeDomainError(w, err, "failed to update asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAsset handles DELETE /api/v1/assets/{id}?reason=withdraw|loss.
// The reason decides whether the drop in portfolio value is recorded
// as a snapshot (loss) or silently absorbed (withdraw).
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	reason := asset.DeleteReason(r.URL.Query().Get("reason"))
	if reason == "" {
		reason = asset.ReasonWithdraw
	}

	if err := h.assets.Delete(r.Context(), r.PathValue("id"), reason); err != nil {
		writeDomainError(w, err, "failed to delete asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
