package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

type accountRequest struct {
	Name string             `json:"name"`
	Type domain.AccountType `json:"type"`
}

type accountResponse struct {
	domain.AccountSource
	Balance decimal.Decimal `json:"balance"`
}

// ListAccounts handles GET /api/v1/accounts. Each account is returned with
// its current ledger balance.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.cash.Accounts(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list accounts")
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		balance, err := h.cash.Balance(r.Context(), a.ID)
		if err != nil {
			writeDomainError(w, err, "failed to compute account balance")
			return
		}
		out = append(out, accountResponse{AccountSource: a, Balance: balance})
	}
	writeJSON(w, http.StatusOK, out)
}

// AddAccount handles POST /api/v1/accounts.
func (h *Handler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.cash.AddAccount(r.Context(), req.Name, req.Type)
	if err != nil {
		writeDomainError(w, err, "failed to add account")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// DeleteAccount handles DELETE /api/v1/accounts/{id}.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.cash.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err, "failed to delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cashTransactionRequest struct {
	SourceID  string                     `json:"sourceId"`
	Type      domain.CashTransactionType `json:"type"`
	Amount    decimal.Decimal            `json:"amount"`
	Notes     string                     `json:"notes"`
	Performer string                     `json:"performer"`
}

// ListCashTransactions handles GET /api/v1/cash-transactions?source=...,
// newest first. Without a source filter the full ledger is returned.
func (h *Handler) ListCashTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.cash.Transactions(r.Context(), r.URL.Query().Get("source"))
	if err != nil {
		writeDomainError(w, err, "failed to list cash transactions")
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// AddCashTransaction handles POST /api/v1/cash-transactions.
func (h *Handler) AddCashTransaction(w http.ResponseWriter, r *http.Request) {
	var req cashTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.cash.AddTransaction(r.Context(), req.SourceID, req.Type, req.Amount, req.Notes, req.Performer)
	if err != nil {
		writeDomainError(w, err, "failed to add cash transaction")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// UpdateCashTransaction handles PUT /api/v1/cash-transactions/{id}. The
// entry's account and date are immutable; only the mutable fields change.
func (h *Handler) UpdateCashTransaction(w http.ResponseWriter, r *http.Request) {
	var req cashTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.cash.UpdateTransaction(r.Context(), r.PathValue("id"), req.Type, req.Amount, req.Notes, req.Performer)
	if err != nil {
		writeDomainError(w, err, "failed to update cash transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCashTransaction handles DELETE /api/v1/cash-transactions/{id}.
func (h *Handler) DeleteCashTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.cash.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err, "failed to delete cash transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
