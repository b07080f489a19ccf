// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to the NCBI E-utilities endpoints: ESearch turns a
// query into PubMed IDs and EFetch returns the full article records for a
// batch of IDs. Each call is a single blocking GET with no retry.
package pubmed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/internal/xmltree"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

const (
	// ESearchURL is the E-utilities search endpoint.
	ESearchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"

	// EFetchURL is the E-utilities record retrieval endpoint.
	EFetchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

	// Database is the Entrez database every request targets.
	Database = "pubmed"

	// MaxResults caps the number of IDs a search returns.
	MaxResults = 10
)

// Client issues ESearch and EFetch requests.
type Client struct {
	HTTP      *http.Client
	NCBI      types.NCBIConfig
	UserAgent string

	// Debug receives request and response diagnostics. Nil discards them.
	Debug io.Writer

	searchURL string
	fetchURL  string
}

// NewClient returns a Client bound to the public E-utilities endpoints.
// A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, ncbi types.NCBIConfig, userAgent string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		HTTP:      httpClient,
		NCBI:      ncbi,
		UserAgent: userAgent,
		searchURL: ESearchURL,
		fetchURL:  EFetchURL,
	}
}

func (c *Client) debugf(format string, args ...any) {
	if c.Debug == nil {
		return
	}
	fmt.Fprintf(c.Debug, "debug: "+format+"\n", args...)
}

// withEtiquette adds the optional api_key, email, and tool parameters.
func (c *Client) withEtiquette(params url.Values) url.Values {
	if c.NCBI.APIKey != "" {
		params.Set("api_key", c.NCBI.APIKey)
	}
	if c.NCBI.Email != "" {
		params.Set("email", c.NCBI.Email)
	}
	if c.NCBI.Tool != "" {
		params.Set("tool", c.NCBI.Tool)
	}
	return params
}

// SearchIDs sends query to ESearch and returns up to MaxResults PubMed IDs
// in the order ESearch ranks them. The query is passed through unvalidated.
// A response without an ID list yields an empty slice.
func (c *Client) SearchIDs(ctx context.Context, query string) ([]string, error) {
	params := c.withEtiquette(url.Values{
		"db":      {Database},
		"term":    {query},
		"retmax":  {strconv.Itoa(MaxResults)},
		"retmode": {"json"},
	})

	c.debugf("ESearch term=%q retmax=%d", query, MaxResults)
	body, err := httputil.Get(ctx, c.HTTP, c.searchURL, params, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("ESearch request: %w", err)
	}

	var sr esearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing ESearch response: %w", err)
	}

	c.debugf("ESearch count=%s translation=%q ids=%v",
		sr.Result.Count, sr.Result.QueryTranslation, sr.Result.IDList)

	ids := sr.Result.IDList
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// FetchDetails retrieves the full records for ids with one batched EFetch
// request and returns the parsed document root. With no ids it returns a
// nil document without touching the network.
func (c *Client) FetchDetails(ctx context.Context, ids []string) (*xmltree.Node, error) {
	if len(ids) == 0 {
		c.debugf("EFetch skipped: no IDs")
		return nil, nil
	}

	params := c.withEtiquette(url.Values{
		"db":      {Database},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	})

	c.debugf("EFetch id=%s", strings.Join(ids, ","))
	body, err := httputil.Get(ctx, c.HTTP, c.fetchURL, params, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("EFetch request: %w", err)
	}
	c.debugf("EFetch returned %d bytes", len(body))

	doc, err := xmltree.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}
	return doc, nil
}

// ESearch JSON structures. Count and translation arrive as strings.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count            string   `json:"count"`
	RetMax           string   `json:"retmax"`
	IDList           []string `json:"idlist"`
	QueryTranslation string   `json:"querytranslation"`
}
