// Package ingest turns a company identifier into a normalized fact
// dataset, fronting the SEC EDGAR client with the facts cache so repeat
// requests for the same company skip the network.
package ingest

import (
	"context"
	"fmt"
	"time"

	"storcky/pkg/core/edgar"
	"storcky/pkg/core/facts"
	"storcky/pkg/core/store"
)

// defaultPeriodLimit bounds how many reporting periods a dataset carries.
// The flow graph compiles one period plus its prior, so a short tail is
// plenty while keeping payloads small.
const defaultPeriodLimit = 8

// FactsClient is the slice of the EDGAR client the service uses.
type FactsClient interface {
	ResolveCIK(identifier string) (string, error)
	FetchCompanyFacts(cik string) (*edgar.CompanyFacts, error)
}

// DatasetService fetches, normalizes and caches company datasets.
type DatasetService struct {
	client      FactsClient
	cache       *store.FactsCache
	maxAge      time.Duration
	periodLimit int
}

// NewDatasetService wires a client and an optional cache. A nil cache
// disables caching entirely; maxAge zero means cached entries never
// expire.
func NewDatasetService(client FactsClient, cache *store.FactsCache, maxAge time.Duration) *DatasetService {
	return &DatasetService{
		client:      client,
		cache:       cache,
		maxAge:      maxAge,
		periodLimit: defaultPeriodLimit,
	}
}

// Dataset returns the company's normalized dataset for the given period
// type ("quarterly" or "annual"), from cache when fresh. Cache failures
// degrade to a re-fetch; they never fail the request.
func (s *DatasetService) Dataset(ctx context.Context, identifier, periodType string) (*facts.CompanyDataset, error) {
	if periodType == "" {
		periodType = edgar.PeriodQuarterly
	}

	if s.cache != nil {
		entry, err := s.cache.Get(ctx, identifier, periodType)
		if err != nil {
			fmt.Printf("[WARNING] Facts cache read failed for %s: %v\n", identifier, err)
		} else if entry != nil && entry.Fresh(s.maxAge) {
			return entry.Dataset, nil
		}
	}

	cik, err := s.client.ResolveCIK(identifier)
	if err != nil {
		return nil, err
	}
	cf, err := s.client.FetchCompanyFacts(cik)
	if err != nil {
		return nil, err
	}
	ds := edgar.BuildDataset(cf, identifier, periodType, s.periodLimit)

	if s.cache != nil {
		if err := s.cache.Save(ctx, periodType, &ds); err != nil {
			fmt.Printf("[WARNING] Facts cache write failed for %s: %v\n", identifier, err)
		}
	}

	return &ds, nil
}
