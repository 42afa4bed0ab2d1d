package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all dashboard routes configured.
// When adminAPIKey is set, mutating routes require a matching Bearer token;
// read routes stay open for the dashboard itself.
func NewServer(port string, h *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/summary", h.GetSummary)
	mux.HandleFunc("GET /api/v1/allocation", h.GetAllocation)
	mux.HandleFunc("GET /api/v1/history", h.GetHistory)
	mux.HandleFunc("GET /api/v1/rate", h.GetRate)
	mux.HandleFunc("GET /api/v1/assets", h.ListAssets)
	mux.HandleFunc("GET /api/v1/accounts", h.ListAccounts)
	mux.HandleFunc("GET /api/v1/cash-transactions", h.ListCashTransactions)

	guard := func(next http.HandlerFunc) http.Handler {
		if adminAPIKey == "" {
			return next
		}
		return requireAuth(adminAPIKey, next)
	}

	mux.Handle("POST /api/v1/rate/refresh", guard(h.RefreshRate))
	mux.Handle("POST /api/v1/assets", guard(h.AddAsset))
	mux.Handle("PUT /api/v1/assets/{id}", guard(h.UpdateAsset))
	mux.Handle("DELETE /api/v1/assets/{id}", guard(h.DeleteAsset))
	mux.Handle("POST /api/v1/transactions", guard(h.AddTransaction))
	mux.Handle("PUT /api/v1/transactions/{id}", guard(h.UpdateTransaction))
	mux.Handle("POST /api/v1/accounts", guard(h.AddAccount))
	mux.Handle("DELETE /api/v1/accounts/{id}", guard(h.DeleteAccount))
	mux.Handle("POST /api/v1/cash-transactions", guard(h.AddCashTransaction))
	mux.Handle("PUT /api/v1/cash-transactions/{id}", guard(h.UpdateCashTransaction))
	mux.Handle("DELETE /api/v1/cash-transactions/{id}", guard(h.DeleteCashTransaction))

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
