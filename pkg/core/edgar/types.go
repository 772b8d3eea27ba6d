// Package edgar fetches XBRL company facts from the SEC EDGAR API and
// shapes them into period-centric datasets for the flow graph compiler.
package edgar

import "encoding/json"

// CompanyFacts is the wire shape of the EDGAR companyfacts endpoint:
// every XBRL fact a company has ever reported, grouped by taxonomy and
// concept tag.
type CompanyFacts struct {
	CIK        int                             `json:"cik"`
	EntityName string                          `json:"entityName"`
	Facts      map[string]map[string]TagDetail `json:"facts"`
}

// TagDetail is one reported concept: its label plus every observation,
// grouped by reporting unit (USD, shares, USD-per-shares).
type TagDetail struct {
	Label       string                   `json:"label"`
	Description string                   `json:"description"`
	Units       map[string][]Observation `json:"units"`
}

// Observation is one reported value of one concept. Start and End bound
// the fact's own period; balance-sheet instants carry only End. FY and FP
// describe the filing that reported the value, which for comparative
// figures is a later filing than the period itself. Val stays a
// json.Number so the exact decimal text survives to the parser.
type Observation struct {
	Start string      `json:"start"`
	End   string      `json:"end"`
	Val   json.Number `json:"val"`
	Accn  string      `json:"accn"`
	FY    int         `json:"fy"`
	FP    string      `json:"fp"`
	Form  string      `json:"form"`
	Filed string      `json:"filed"`
	Frame string      `json:"frame,omitempty"`
}

// GAAP returns the us-gaap tag map, the taxonomy the statement templates
// draw from.
func (cf *CompanyFacts) GAAP() map[string]TagDetail {
	return cf.Facts["us-gaap"]
}
