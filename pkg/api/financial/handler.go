// Package financial serves the normalized facts dataset consumed by the
// frontend's period picker and the flow graph compiler.
package financial

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storcky/pkg/core/edgar"
	"storcky/pkg/core/facts"
)

// DatasetProvider resolves a company identifier into a fact dataset,
// typically ingest.DatasetService.
type DatasetProvider interface {
	Dataset(ctx context.Context, identifier, periodType string) (*facts.CompanyDataset, error)
}

// Handler serves GET /api/financial/{ticker}.
type Handler struct {
	provider DatasetProvider
}

// NewHandler creates the financial data handler.
func NewHandler(provider DatasetProvider) *Handler {
	return &Handler{provider: provider}
}

// HandleFinancial handles GET /api/financial/{ticker}?period_type=annual.
// Returns the company's normalized dataset as JSON; 404 for an unknown
// company, 503 when SEC is unreachable.
func (h *Handler) HandleFinancial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/financial/"), "/")
	if ticker == "" {
		http.Error(w, "Missing ticker in path", http.StatusBadRequest)
		return
	}

	periodType := r.URL.Query().Get("period_type")

	ds, err := h.provider.Dataset(r.Context(), ticker, periodType)
	if err != nil {
		writeProviderError(w, ticker, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ds)
}

// writeProviderError maps provider failures onto the API's status codes:
// unknown company 404, SEC unreachable 503, anything else 500.
func writeProviderError(w http.ResponseWriter, identifier string, err error) {
	switch {
	case errors.Is(err, edgar.ErrCompanyNotFound):
		http.Error(w, fmt.Sprintf("Company not found: %s", identifier), http.StatusNotFound)
	case errors.Is(err, edgar.ErrUnavailable):
		fmt.Printf("[EDGAR] Upstream failure for %s: %v\n", identifier, err)
		http.Error(w, "SEC EDGAR is unavailable, try again later", http.StatusServiceUnavailable)
	default:
		fmt.Printf("[ERROR] Dataset for %s: %v\n", identifier, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
