// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to the NCBI E-utilities: esearch for PMID lists
// and efetch for full article records.
package pubmed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pharma-papers/internal/httputil"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// eutilsBase is the NCBI E-utilities endpoint. Declared as a var so tests
// can substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// NCBI request budgets: 3 req/s anonymous, 10 req/s with an API key.
const (
	anonymousRate = 3.0
	keyedRate     = 10.0

	// MaxBatchSize is the largest PMID batch one efetch GET accepts.
	MaxBatchSize = 200
)

// Error kinds surfaced by the client. Callers discriminate with errors.Is.
var (
	// ErrQueryRejected means PubMed refused the query itself; retrying
	// the same query cannot help.
	ErrQueryRejected = errors.New("query rejected by PubMed")

	// ErrUpstreamUnavailable means the service could not be reached or
	// kept failing after retries.
	ErrUpstreamUnavailable = errors.New("PubMed unavailable")
)

// Client is a rate-limited E-utilities client. The underlying
// http.Client is reused across calls so connections stay warm for the
// whole run.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        types.PubMedConfig
}

// NewClient builds a Client from cfg. The rate limit follows NCBI policy
// for the configured credentials unless cfg.RequestsPerSecond overrides it.
func NewClient(httpClient *http.Client, cfg types.PubMedConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = anonymousRate
		if cfg.APIKey != "" {
			rps = keyedRate
		}
	}
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cfg:        cfg,
	}
}

// Search submits the query to esearch and returns up to limit PMIDs in
// PubMed's result order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(limit)},
	}
	c.addCredentials(params)

	resp, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp.StatusCode, "esearch"); err != nil {
		return nil, err
	}

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", ErrUpstreamUnavailable)
	}
	if sr.Result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrQueryRejected, sr.Result.Error)
	}

	return sr.Result.IDList, nil
}

// FetchBatch retrieves full records for the given PMIDs via efetch. The
// returned slice follows the order of pmids; identifiers the service did
// not resolve, and records too mangled to parse, are simply missing from
// it. The caller decides how to report the shortfall.
func (c *Client) FetchBatch(ctx context.Context, pmids []string) ([]Record, error) {
	if len(pmids) == 0 {
		return nil, nil
	}
	if len(pmids) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds efetch limit of %d", len(pmids), MaxBatchSize)
	}

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	c.addCredentials(params)

	resp, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp.StatusCode, "efetch"); err != nil {
		return nil, err
	}

	records, err := parseRecords(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", ErrUpstreamUnavailable)
	}

	return orderRecords(pmids, records), nil
}

// get issues a rate-limited GET with retry on throttled and transient
// failures.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := eutilsBase + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

// checkStatus maps a terminal HTTP status to an error kind. 4xx means
// the request itself is bad; anything else non-OK survived retries and
// counts as unavailable.
func (c *Client) checkStatus(code int, endpoint string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code >= 400 && code < 500 && code != http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned HTTP %d", ErrQueryRejected, endpoint, code)
	default:
		return fmt.Errorf("%w: %s returned HTTP %d", ErrUpstreamUnavailable, endpoint, code)
	}
}

// addCredentials attaches the NCBI identification parameters when set.
func (c *Client) addCredentials(params url.Values) {
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
}

// orderRecords reorders parsed records to match the requested PMID order.
// Unresolved PMIDs leave no gap; the result is simply shorter.
func orderRecords(pmids []string, records []Record) []Record {
	byID := make(map[string]Record, len(records))
	for _, r := range records {
		byID[r.PMID] = r
	}
	ordered := make([]Record, 0, len(records))
	for _, id := range pmids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}
