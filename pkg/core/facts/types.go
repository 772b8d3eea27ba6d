// Package facts defines the normalized financial dataset consumed by the
// flow-graph compiler: concepts, reporting periods, and the tagged values
// inside each period. Datasets are produced by a provider (SEC EDGAR, cache)
// and treated as immutable from here on.
package facts

import "time"

// UnitKind classifies what a concept measures.
type UnitKind string

const (
	UnitCurrency    UnitKind = "currency"
	UnitShares      UnitKind = "shares"
	UnitUnspecified UnitKind = "unspecified"
)

// Period type codes follow SEC fiscal period naming.
const (
	PeriodAnnual = "FY"
	PeriodQ1     = "Q1"
	PeriodQ2     = "Q2"
	PeriodQ3     = "Q3"
	PeriodQ4     = "Q4"
)

// Company identifies the reporting entity.
type Company struct {
	Name   string `json:"name"`
	CIK    string `json:"cik"`
	Ticker string `json:"ticker,omitempty"`
}

// Concept is a standardized financial-statement tag (e.g. "NetIncomeLoss")
// with its human-readable label and unit kind.
type Concept struct {
	Tag   string   `json:"tag"`
	Label string   `json:"label"`
	Unit  UnitKind `json:"unit"`
}

// Fact is one concept's value within one period. Values stay string-encoded
// on the wire; parsing happens when the value index is built.
type Fact struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Period is an identified reporting interval holding its facts. At most one
// fact per concept exists inside a period; the provider de-duplicates.
type Period struct {
	ID        string    `json:"id"` // e.g. "Q3-2025"
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Type      string    `json:"period_type"` // "FY", "Q1".."Q4"
	Facts     []Fact    `json:"facts"`
}

// CompanyDataset is the full input to a compile call: company identity plus
// every concept and period the provider returned.
type CompanyDataset struct {
	Company  Company   `json:"company"`
	Concepts []Concept `json:"concepts"`
	Periods  []Period  `json:"periods"`
}

// FindPeriod looks up a period by its identifier.
func (d CompanyDataset) FindPeriod(id string) (Period, bool) {
	for _, p := range d.Periods {
		if p.ID == id {
			return p, true
		}
	}
	return Period{}, false
}

// LatestPeriod returns the period with the greatest end date.
func (d CompanyDataset) LatestPeriod() (Period, bool) {
	var latest Period
	found := false
	for _, p := range d.Periods {
		if !found || p.EndDate.After(latest.EndDate) {
			latest = p
			found = true
		}
	}
	return latest, found
}

// PriorPeriod returns the period whose end date is the greatest one strictly
// before the current period's end date. Periods sharing the current end date
// (an FY and its Q4, for instance) are never "prior".
func (d CompanyDataset) PriorPeriod(current Period) (Period, bool) {
	var prior Period
	found := false
	for _, p := range d.Periods {
		if !p.EndDate.Before(current.EndDate) {
			continue
		}
		if !found || p.EndDate.After(prior.EndDate) {
			prior = p
			found = true
		}
	}
	return prior, found
}

// ConceptLabel returns the external label for a concept tag, or "" when the
// dataset does not carry the concept.
func (d CompanyDataset) ConceptLabel(tag string) string {
	for _, c := range d.Concepts {
		if c.Tag == tag {
			return c.Label
		}
	}
	return ""
}
