package ingest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storcky/pkg/core/edgar"
	"storcky/pkg/core/store"
)

type mockClient struct {
	resolveCalls int
	fetchCalls   int
}

func (m *mockClient) ResolveCIK(identifier string) (string, error) {
	m.resolveCalls++
	return "0000000042", nil
}

func (m *mockClient) FetchCompanyFacts(cik string) (*edgar.CompanyFacts, error) {
	m.fetchCalls++
	var cf edgar.CompanyFacts
	raw := `{
		"cik": 42,
		"entityName": "Test Co",
		"facts": {
			"us-gaap": {
				"Revenues": {
					"label": "Revenues",
					"units": {"USD": [
						{"start": "2025-01-01", "end": "2025-03-31", "val": 1000,
						 "fy": 2025, "fp": "Q1", "form": "10-Q", "filed": "2025-05-01"}
					]}
				}
			}
		}
	}`
	if err := json.Unmarshal([]byte(raw), &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

func TestDatasetServiceFetchesAndCaches(t *testing.T) {
	client := &mockClient{}
	cache := store.NewFactsCache(nil, t.TempDir())
	svc := NewDatasetService(client, cache, time.Hour)
	ctx := context.Background()

	ds, err := svc.Dataset(ctx, "TEST", "")
	if err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	if ds.Company.Name != "Test Co" {
		t.Errorf("company = %q", ds.Company.Name)
	}
	if len(ds.Periods) != 1 || ds.Periods[0].ID != "Q1-2025" {
		t.Fatalf("periods = %+v", ds.Periods)
	}
	if client.fetchCalls != 1 {
		t.Fatalf("fetch calls = %d, want 1", client.fetchCalls)
	}

	// Second request is served from the cache.
	ds, err = svc.Dataset(ctx, "TEST", "")
	if err != nil {
		t.Fatalf("Dataset (cached): %v", err)
	}
	if client.fetchCalls != 1 {
		t.Errorf("fetch calls = %d after cached read, want 1", client.fetchCalls)
	}
	if len(ds.Periods) != 1 {
		t.Errorf("cached periods = %+v", ds.Periods)
	}
}

func TestDatasetServiceStaleEntryRefetches(t *testing.T) {
	client := &mockClient{}
	cache := store.NewFactsCache(nil, t.TempDir())
	svc := NewDatasetService(client, cache, time.Nanosecond)
	ctx := context.Background()

	if _, err := svc.Dataset(ctx, "TEST", ""); err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := svc.Dataset(ctx, "TEST", ""); err != nil {
		t.Fatalf("Dataset (stale): %v", err)
	}
	if client.fetchCalls != 2 {
		t.Errorf("fetch calls = %d, want 2 after expiry", client.fetchCalls)
	}
}

func TestDatasetServiceNilCache(t *testing.T) {
	client := &mockClient{}
	svc := NewDatasetService(client, nil, 0)

	if _, err := svc.Dataset(context.Background(), "TEST", "annual"); err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	if client.fetchCalls != 1 {
		t.Errorf("fetch calls = %d", client.fetchCalls)
	}
}
