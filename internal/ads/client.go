// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/ciera-report/internal/httputil"
	"github.com/pdiddy/ciera-report/pkg/types"
)

// searchPath is the ADS search endpoint relative to the API root.
const searchPath = "/v1/search/query"

// Client runs searches against the ADS API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the API root (for testing or a mirror).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates an ADS client authenticating with token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: types.DefaultTimeout},
		baseURL:    types.DefaultBaseURL,
		token:      token,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Results is the outcome of one search.
type Results struct {
	// NumFound is the total number of matches reported by ADS, which may
	// exceed len(Papers) when the row cap applies.
	NumFound int

	// Papers are the returned records in provider sort order.
	Papers []types.Paper
}

// Search sends q to ADS and decodes the matching papers. Any transport,
// auth or decoding failure is returned; nothing is retried.
func (c *Client) Search(ctx context.Context, q Query) (Results, error) {
	if c.token == "" {
		return Results{}, fmt.Errorf("%w: no API token configured", ErrAuth)
	}

	reqURL := c.baseURL + searchPath + "?" + q.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Results{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("querying ADS",
		zap.String("q", q.Q),
		zap.Strings("fl", q.Fields),
		zap.String("sort", q.Sort),
		zap.Int("rows", q.Rows))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Results{}, fmt.Errorf("ADS API request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckResponse(resp); err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return Results{}, &APIError{StatusCode: se.StatusCode, Message: se.Message}
		}
		return Results{}, err
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Results{}, fmt.Errorf("%w: parsing search response: %v", ErrInvalidResponse, err)
	}

	papers := make([]types.Paper, 0, len(sr.Response.Docs))
	for _, d := range sr.Response.Docs {
		papers = append(papers, d.toPaper())
	}

	c.logger.Debug("ADS search complete",
		zap.Int("num_found", sr.Response.NumFound),
		zap.Int("returned", len(papers)))

	return Results{NumFound: sr.Response.NumFound, Papers: papers}, nil
}

// ADS search API JSON structures.
type searchResponse struct {
	ResponseHeader responseHeader `json:"responseHeader"`
	Response       responseBody   `json:"response"`
}

type responseHeader struct {
	Status int `json:"status"`
	QTime  int `json:"QTime"`
}

type responseBody struct {
	NumFound int   `json:"numFound"`
	Start    int   `json:"start"`
	Docs     []doc `json:"docs"`
}

type doc struct {
	Bibcode       string   `json:"bibcode"`
	Title         []string `json:"title"`
	Author        []string `json:"author"`
	Year          string   `json:"year"`
	Pub           string   `json:"pub"`
	Issue         string   `json:"issue"`
	Page          []string `json:"page"`
	CitationCount int      `json:"citation_count"`
	Aff           []string `json:"aff"`
}

// toPaper keeps the first title and first page, as the report only ever
// prints one of each.
func (d doc) toPaper() types.Paper {
	p := types.Paper{
		Bibcode:       d.Bibcode,
		Authors:       d.Author,
		Year:          d.Year,
		Publication:   d.Pub,
		Issue:         d.Issue,
		CitationCount: d.CitationCount,
		Affiliations:  d.Aff,
	}
	if len(d.Title) > 0 {
		p.Title = d.Title[0]
	}
	if len(d.Page) > 0 {
		p.Page = d.Page[0]
	}
	return p
}
