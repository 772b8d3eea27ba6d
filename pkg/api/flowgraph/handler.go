// Package flowgraph serves compiled Sankey graphs over HTTP.
package flowgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"storcky/pkg/core/edgar"
	"storcky/pkg/core/facts"
	coreflow "storcky/pkg/core/flowgraph"
)

// DatasetProvider resolves a company identifier into a fact dataset,
// typically ingest.DatasetService.
type DatasetProvider interface {
	Dataset(ctx context.Context, identifier, periodType string) (*facts.CompanyDataset, error)
}

// CompileRequest is the POST /api/flowgraph body. Period is optional and
// defaults to the dataset's latest period. Template is an optional
// override merged onto the server's base template; it is decoded
// leniently, so hand-written payloads with comments or trailing commas
// are accepted.
type CompileRequest struct {
	Ticker     string          `json:"ticker"`
	Period     string          `json:"period,omitempty"`
	PeriodType string          `json:"period_type,omitempty"`
	Template   json.RawMessage `json:"template,omitempty"`
}

// CompileResponse wraps the compiled graph with the company and period it
// was resolved against.
type CompileResponse struct {
	Company facts.Company   `json:"company"`
	Period  string          `json:"period"`
	Graph   *coreflow.Graph `json:"graph"`
}

// Handler serves POST /api/flowgraph.
type Handler struct {
	provider DatasetProvider
	compiler *coreflow.Compiler
}

// NewHandler creates the flow graph handler around a dataset provider and
// a compiler carrying the server's base template.
func NewHandler(provider DatasetProvider, compiler *coreflow.Compiler) *Handler {
	return &Handler{provider: provider, compiler: compiler}
}

// HandleCompile handles POST /api/flowgraph: fetch the company's facts,
// compile the requested (or latest) period and return the graph. 400 for
// a bad body or unknown period, 404 for an unknown company, 503 when SEC
// is unreachable.
func (h *Handler) HandleCompile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Ticker == "" {
		http.Error(w, "Missing ticker", http.StatusBadRequest)
		return
	}

	var override *coreflow.Template
	if len(req.Template) > 0 {
		// The override is either an inline JSON object or a string of
		// template text, which may use the lenient Hjson syntax.
		raw := req.Template
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			raw = []byte(asString)
		}
		tpl, err := coreflow.ParseTemplate(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid override template: %v", err), http.StatusBadRequest)
			return
		}
		override = &tpl
	}

	ds, err := h.provider.Dataset(r.Context(), req.Ticker, req.PeriodType)
	if err != nil {
		switch {
		case errors.Is(err, edgar.ErrCompanyNotFound):
			http.Error(w, fmt.Sprintf("Company not found: %s", req.Ticker), http.StatusNotFound)
		case errors.Is(err, edgar.ErrUnavailable):
			fmt.Printf("[EDGAR] Upstream failure for %s: %v\n", req.Ticker, err)
			http.Error(w, "SEC EDGAR is unavailable, try again later", http.StatusServiceUnavailable)
		default:
			fmt.Printf("[ERROR] Dataset for %s: %v\n", req.Ticker, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	periodID := req.Period
	if periodID == "" {
		latest, ok := ds.LatestPeriod()
		if !ok {
			http.Error(w, fmt.Sprintf("No reporting periods available for %s", req.Ticker), http.StatusNotFound)
			return
		}
		periodID = latest.ID
	}

	graph, err := h.compiler.Compile(*ds, periodID, override)
	if err != nil {
		if errors.Is(err, coreflow.ErrPeriodNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Printf("[ERROR] Compile %s %s: %v\n", req.Ticker, periodID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	fmt.Printf("[FLOWGRAPH] Compiled %s %s: %d nodes, %d links\n",
		req.Ticker, periodID, len(graph.Nodes), len(graph.Links))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CompileResponse{
		Company: ds.Company,
		Period:  periodID,
		Graph:   graph,
	})
}
