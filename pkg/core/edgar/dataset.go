package edgar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"storcky/pkg/core/facts"
)

// Period type filters accepted by BuildDataset.
const (
	PeriodQuarterly = "quarterly"
	PeriodAnnual    = "annual"
)

const dateLayout = "2006-01-02"

// BuildDataset shapes a raw companyfacts response into a period-centric
// dataset. Observations are grouped by their period end date, since
// balance-sheet instants carry no start date yet belong to the quarter
// ending on the same day. Within a group each tag keeps its best
// observation and the group is labeled from its first-ever filing, which
// is the one whose fiscal-year and fiscal-period fields actually describe
// the period rather than a later filing that merely restated it as a
// comparative.
//
// periodType selects annual (FY) or quarterly (Q1..Q4) observations;
// anything but "annual" means quarterly. A positive limit keeps only the
// most recent periods. Only USD-denominated facts participate: the flow
// graph renders dollar flows.
func BuildDataset(cf *CompanyFacts, ticker, periodType string, limit int) facts.CompanyDataset {
	ds := facts.CompanyDataset{
		Company: facts.Company{
			Name:   cf.EntityName,
			CIK:    fmt.Sprintf("%010d", cf.CIK),
			Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		},
	}

	annual := strings.EqualFold(periodType, PeriodAnnual)
	gaap := cf.GAAP()

	groups := make(map[string]*periodGroup)
	for tag, detail := range gaap {
		for _, o := range detail.Units["USD"] {
			if !periodMatches(annual, o.FP) || o.End == "" {
				continue
			}
			end, err := time.Parse(dateLayout, o.End)
			if err != nil {
				continue
			}

			g, ok := groups[o.End]
			if !ok {
				g = &periodGroup{end: end, chosen: make(map[string]Observation)}
				groups[o.End] = g
			}
			if g.labeler.Filed == "" || o.Filed < g.labeler.Filed {
				g.labeler = o
			}
			if cur, ok := g.chosen[tag]; !ok || beats(o, cur) {
				g.chosen[tag] = o
			}
		}
	}

	ordered := make([]*periodGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].end.After(ordered[j].end)
	})

	usedTags := make(map[string]bool)
	seenIDs := make(map[string]bool)
	for _, g := range ordered {
		if limit > 0 && len(ds.Periods) >= limit {
			break
		}
		id := fmt.Sprintf("%s-%d", g.labeler.FP, g.labeler.FY)
		if seenIDs[id] {
			// A stale boundary variant of a period already kept with a
			// later end date.
			continue
		}
		seenIDs[id] = true
		ds.Periods = append(ds.Periods, g.toPeriod(id))
		for tag := range g.chosen {
			usedTags[tag] = true
		}
	}

	for tag := range usedTags {
		ds.Concepts = append(ds.Concepts, facts.Concept{
			Tag:   tag,
			Label: gaap[tag].Label,
			Unit:  facts.UnitCurrency,
		})
	}
	sort.Slice(ds.Concepts, func(i, j int) bool {
		return ds.Concepts[i].Tag < ds.Concepts[j].Tag
	})

	return ds
}

// periodGroup accumulates the observations sharing one period end date.
type periodGroup struct {
	end     time.Time
	labeler Observation
	chosen  map[string]Observation
}

// toPeriod freezes a group into a dataset period. The start date is the
// latest start among the chosen duration observations, which for a mixed
// group of quarter and year-to-date durations is the quarter's own start;
// a group of pure instants falls back to its end date.
func (g *periodGroup) toPeriod(id string) facts.Period {
	start := g.end
	fs := make([]facts.Fact, 0, len(g.chosen))
	for tag, o := range g.chosen {
		fs = append(fs, facts.Fact{Tag: tag, Value: o.Val.String()})
		if o.Start == "" {
			continue
		}
		s, err := time.Parse(dateLayout, o.Start)
		if err != nil || !s.Before(g.end) {
			continue
		}
		if start.Equal(g.end) || s.After(start) {
			start = s
		}
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Tag < fs[j].Tag })

	return facts.Period{
		ID:        id,
		StartDate: start,
		EndDate:   g.end,
		Type:      g.labeler.FP,
		Facts:     fs,
	}
}

// beats reports whether observation a should replace b as a tag's value
// for one period. The shorter duration wins so a quarter's own figure
// beats the year-to-date figure ending the same day; among equal spans
// the latest filing wins so amendments supersede originals.
func beats(a, b Observation) bool {
	sa, sb := spanDays(a), spanDays(b)
	if sa != sb {
		return sa < sb
	}
	return a.Filed > b.Filed
}

func spanDays(o Observation) int {
	if o.Start == "" {
		return 0
	}
	start, err1 := time.Parse(dateLayout, o.Start)
	end, err2 := time.Parse(dateLayout, o.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

func periodMatches(annual bool, fp string) bool {
	fp = strings.ToUpper(fp)
	if annual {
		return fp == facts.PeriodAnnual
	}
	switch fp {
	case facts.PeriodQ1, facts.PeriodQ2, facts.PeriodQ3, facts.PeriodQ4:
		return true
	}
	return false
}
