package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storcky/pkg/core/facts"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FactsCache stores normalized company datasets so repeat requests skip
// the SEC round trip. Hybrid vault: DB (primary) + file system
// (fallback/local). Entries are keyed by (ticker, period type) because
// quarterly and annual datasets for one company differ.
type FactsCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewFactsCache creates a facts cache. With a nil pool it falls back to a
// file-based cache in dir; an empty dir defaults to .cache/storcky/facts.
func NewFactsCache(pool *pgxpool.Pool, dir string) *FactsCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "storcky", "facts")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check FactsCache dir: %v\n", err)
		}
	}
	return &FactsCache{pool: pool, fileDir: dir}
}

// CacheEntry wraps one cached dataset with the bookkeeping needed for
// staleness decisions.
type CacheEntry struct {
	ID         string                `json:"id"`
	Ticker     string                `json:"ticker"`
	PeriodType string                `json:"period_type"`
	CIK        string                `json:"cik"`
	Dataset    *facts.CompanyDataset `json:"dataset"`
	CachedAt   time.Time             `json:"cached_at"`
}

// Fresh reports whether the entry is younger than maxAge. A zero maxAge
// never expires.
func (e *CacheEntry) Fresh(maxAge time.Duration) bool {
	if maxAge == 0 {
		return true
	}
	return time.Since(e.CachedAt) < maxAge
}

// Get retrieves the cached dataset for a ticker and period type, or nil
// on a miss. Cache errors degrade to a miss; the caller re-fetches.
func (c *FactsCache) Get(ctx context.Context, ticker, periodType string) (*CacheEntry, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if c.pool != nil {
		query := `
			SELECT id, cik, data, cached_at
			FROM flow_datasets
			WHERE ticker = $1 AND period_type = $2
			LIMIT 1
		`
		var (
			id       string
			cik      string
			dataJSON []byte
			cachedAt time.Time
		)
		err := c.pool.QueryRow(ctx, query, ticker, periodType).Scan(&id, &cik, &dataJSON, &cachedAt)
		if err != nil {
			return nil, nil // Cache miss
		}
		var ds facts.CompanyDataset
		if err := json.Unmarshal(dataJSON, &ds); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached dataset: %w", err)
		}
		return &CacheEntry{
			ID:         id,
			Ticker:     ticker,
			PeriodType: periodType,
			CIK:        cik,
			Dataset:    &ds,
			CachedAt:   cachedAt,
		}, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.entryPath(ticker, periodType))
	}

	return nil, nil
}

// Save stores a dataset in the cache, replacing any entry for the same
// ticker and period type.
func (c *FactsCache) Save(ctx context.Context, periodType string, ds *facts.CompanyDataset) error {
	entry := CacheEntry{
		ID:         uuid.NewString(),
		Ticker:     strings.ToUpper(strings.TrimSpace(ds.Company.Ticker)),
		PeriodType: periodType,
		CIK:        ds.Company.CIK,
		Dataset:    ds,
		CachedAt:   time.Now().UTC(),
	}

	if c.pool != nil {
		dataJSON, err := json.Marshal(ds)
		if err != nil {
			return fmt.Errorf("failed to marshal dataset: %w", err)
		}
		query := `
			INSERT INTO flow_datasets (id, ticker, period_type, cik, company_name, data, cached_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (ticker, period_type)
			DO UPDATE SET
				cik = EXCLUDED.cik,
				company_name = EXCLUDED.company_name,
				data = EXCLUDED.data,
				cached_at = EXCLUDED.cached_at
		`
		_, err = c.pool.Exec(ctx, query,
			entry.ID, entry.Ticker, entry.PeriodType, entry.CIK,
			ds.Company.Name, dataJSON, entry.CachedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
		return nil
	}

	if c.fileDir != "" {
		entryJSON, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal cache entry: %w", err)
		}
		path := c.entryPath(entry.Ticker, periodType)
		if err := os.WriteFile(path, entryJSON, 0644); err != nil {
			return fmt.Errorf("failed to write cache file %s: %w", path, err)
		}
	}

	return nil
}

func (c *FactsCache) entryPath(ticker, periodType string) string {
	return filepath.Join(c.fileDir, fmt.Sprintf("%s_%s.json", ticker, periodType))
}

func (c *FactsCache) loadFromFile(path string) (*CacheEntry, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var entry CacheEntry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", path, err)
	}
	if entry.Dataset == nil {
		return nil, nil
	}
	return &entry, nil
}
