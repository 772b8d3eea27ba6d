package edgar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultUserAgent  = "Storcky info@storcky.app"
	companyFactsURL   = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	companyTickersURL = "https://www.sec.gov/files/company_tickers.json"
)

var (
	// ErrCompanyNotFound marks an identifier EDGAR has no company for.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrUnavailable marks a transient EDGAR failure: network trouble or
	// a non-404 HTTP status.
	ErrUnavailable = errors.New("edgar unavailable")
)

// Client talks to the SEC EDGAR data APIs. The ticker-to-CIK map is
// loaded lazily on first lookup and cached for the client's lifetime.
type Client struct {
	client      *http.Client
	userAgent   string
	tickerCache map[string]string
	tickerMutex sync.Mutex
}

// NewClient creates an EDGAR client. The SEC requires a User-Agent that
// identifies the caller with contact information; an empty string falls
// back to the built-in default.
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		client:    &http.Client{Timeout: 60 * time.Second},
		userAgent: userAgent,
	}
}

// ResolveCIK turns a company identifier into a zero-padded 10-digit CIK.
// Numeric identifiers are treated as CIKs directly; anything else is
// looked up as a ticker symbol.
func (c *Client) ResolveCIK(identifier string) (string, error) {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return "", fmt.Errorf("empty identifier: %w", ErrCompanyNotFound)
	}
	if isNumeric(id) {
		return padCIK(id), nil
	}
	return c.LookupCIK(id)
}

// LookupCIK resolves a ticker symbol against the SEC's company_tickers
// list, fetching the full list once on first use.
func (c *Client) LookupCIK(ticker string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))

	c.tickerMutex.Lock()
	defer c.tickerMutex.Unlock()

	if cik, ok := c.tickerCache[normalized]; ok {
		return cik, nil
	}
	if len(c.tickerCache) == 0 {
		if err := c.loadTickerCache(); err != nil {
			return "", err
		}
		if cik, ok := c.tickerCache[normalized]; ok {
			return cik, nil
		}
	}
	return "", fmt.Errorf("ticker %s not in SEC database: %w", ticker, ErrCompanyNotFound)
}

// loadTickerCache fetches the ticker list.
// Format: {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}
func (c *Client) loadTickerCache() error {
	fmt.Println("[EDGAR] Loading ticker->CIK map from SEC...")
	body, err := c.fetchURL(companyTickersURL)
	if err != nil {
		return fmt.Errorf("fetch company tickers: %w", err)
	}

	type tickerEntry struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	var entries map[string]tickerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("parse ticker JSON: %w", err)
	}

	c.tickerCache = make(map[string]string, len(entries))
	for _, e := range entries {
		c.tickerCache[strings.ToUpper(e.Ticker)] = fmt.Sprintf("%010d", e.CIK)
	}
	fmt.Printf("[EDGAR] Loaded %d tickers from SEC\n", len(c.tickerCache))
	return nil
}

// FetchCompanyFacts pulls the complete XBRL fact history for a CIK.
func (c *Client) FetchCompanyFacts(cik string) (*CompanyFacts, error) {
	body, err := c.fetchURL(fmt.Sprintf(companyFactsURL, padCIK(cik)))
	if err != nil {
		return nil, err
	}
	var cf CompanyFacts
	if err := json.Unmarshal(body, &cf); err != nil {
		return nil, fmt.Errorf("parse companyfacts for CIK %s: %w", cik, err)
	}
	return &cf, nil
}

func (c *Client) fetchURL(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", url, err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: HTTP 404: %w", url, ErrCompanyNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: HTTP %d: %w", url, resp.StatusCode, ErrUnavailable)
	}
	return io.ReadAll(resp.Body)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// padCIK strips leading zeros and re-pads to the 10 digits the data APIs
// expect.
func padCIK(cik string) string {
	cik = strings.TrimLeft(cik, "0")
	return fmt.Sprintf("%010s", cik)
}
