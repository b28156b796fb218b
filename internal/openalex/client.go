package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/helixir/openalex-explorer/internal/domain"
	"github.com/helixir/openalex-explorer/internal/httpclient"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// OpenAlex polite pool (with email) allows higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the default number of results per search request.
	DefaultPerPage = 25

	// maxPerPage is the page size limit of the OpenAlex API.
	maxPerPage = 200

	// maxBodyBytes caps how much of a result payload is read.
	maxBodyBytes = 10 << 20

	// maxErrorBodyBytes caps how much of an error payload is read.
	maxErrorBodyBytes = 1 << 20

	// source names this upstream in errors.
	source = "openalex"
)

// orcidPattern matches a bare ORCID identifier such as 0000-0002-1825-0097.
var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool.
	// Providing an email grants access to higher rate limits.
	// See: https://docs.openalex.org/how-to-use-the-api/rate-limits-and-authentication
	Email string

	// Timeout is the request timeout.
	// Defaults to 30 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	// Defaults to 10 req/sec (polite pool with email gets higher).
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	// Defaults to 10.
	BurstSize int

	// MaxRetries is the number of retries after a failed request attempt.
	// Zero means the transport default (3).
	MaxRetries int

	// RetryDelay is the base delay of the retry backoff schedule.
	// Zero means the transport default (1 second).
	RetryDelay time.Duration

	// PerPage is the number of results requested per search when the caller
	// does not pass a limit. Defaults to 25, maximum is 200 per OpenAlex API.
	PerPage int
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
}

// Client talks to the OpenAlex REST API.
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	userAgent := "OpenAlex-Explorer/1.0"
	if cfg.Email != "" {
		userAgent += " (mailto:" + cfg.Email + ")"
	}

	return &Client{
		config: cfg,
		httpClient: httpclient.New(httpclient.Config{
			Timeout:    cfg.Timeout,
			RateLimit:  cfg.RateLimit,
			BurstSize:  cfg.BurstSize,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			UserAgent:  userAgent,
			Source:     source,
		}),
	}
}

// NewWithHTTPClient creates a new OpenAlex client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *httpclient.Client) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// WorksPage is one page of normalized work search results. Skipped counts
// records the normalizer dropped.
type WorksPage struct {
	Publications []domain.Publication
	TotalCount   int
	Skipped      int
}

// AuthorsPage is one page of normalized author search results.
type AuthorsPage struct {
	Authors    []domain.AuthorProfile
	TotalCount int
	Skipped    int
}

// ConceptsPage is one page of normalized concept search results.
type ConceptsPage struct {
	Concepts   []domain.Concept
	TotalCount int
	Skipped    int
}

// SearchWorks queries the works endpoint and returns normalized publications.
func (c *Client) SearchWorks(ctx context.Context, query string, filters Filters, limit int) (*WorksPage, error) {
	searchURL, err := c.buildSearchURL("/works", query, filters, limit)
	if err != nil {
		return nil, err
	}

	var resp WorksResponse
	if err := c.getJSON(ctx, searchURL, "", "", &resp); err != nil {
		return nil, err
	}

	publications, skipped := worksToPublications(resp.Results)
	return &WorksPage{
		Publications: publications,
		TotalCount:   resp.Meta.Count,
		Skipped:      skipped,
	}, nil
}

// GetWork retrieves a single work by identifier. The id may be a short
// OpenAlex ID (W2741809807), a full OpenAlex URL, or a DOI in bare, doi:,
// or URL form.
func (c *Client) GetWork(ctx context.Context, id string) (*domain.Publication, error) {
	fetchURL, err := c.buildGetURL("/works/" + workIDPath(id))
	if err != nil {
		return nil, err
	}

	var work Work
	if err := c.getJSON(ctx, fetchURL, "publication", id, &work); err != nil {
		return nil, err
	}

	publication, err := workToPublication(&work)
	if err != nil {
		return nil, err
	}
	return &publication, nil
}

// SearchAuthors queries the authors endpoint and returns normalized profiles.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit int) (*AuthorsPage, error) {
	searchURL, err := c.buildSearchURL("/authors", query, nil, limit)
	if err != nil {
		return nil, err
	}

	var resp AuthorsResponse
	if err := c.getJSON(ctx, searchURL, "", "", &resp); err != nil {
		return nil, err
	}

	authors, skipped := authorsToProfiles(resp.Results)
	return &AuthorsPage{
		Authors:    authors,
		TotalCount: resp.Meta.Count,
		Skipped:    skipped,
	}, nil
}

// GetAuthor retrieves a single author by identifier. The id may be a short
// OpenAlex ID (A5023888391), a full OpenAlex URL, or an ORCID in bare,
// orcid:, or URL form.
func (c *Client) GetAuthor(ctx context.Context, id string) (*domain.AuthorProfile, error) {
	fetchURL, err := c.buildGetURL("/authors/" + authorIDPath(id))
	if err != nil {
		return nil, err
	}

	var record AuthorRecord
	if err := c.getJSON(ctx, fetchURL, "author", id, &record); err != nil {
		return nil, err
	}

	profile, err := authorToProfile(&record)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SearchConcepts queries the concepts endpoint and returns normalized
// concepts.
func (c *Client) SearchConcepts(ctx context.Context, query string, limit int) (*ConceptsPage, error) {
	searchURL, err := c.buildSearchURL("/concepts", query, nil, limit)
	if err != nil {
		return nil, err
	}

	var resp ConceptsResponse
	if err := c.getJSON(ctx, searchURL, "", "", &resp); err != nil {
		return nil, err
	}

	concepts, skipped := conceptsToConcepts(resp.Results)
	return &ConceptsPage{
		Concepts:   concepts,
		TotalCount: resp.Meta.Count,
		Skipped:    skipped,
	}, nil
}

// GetConcept retrieves a single concept by identifier. The id may be a short
// OpenAlex ID (C71924100) or a full OpenAlex URL.
func (c *Client) GetConcept(ctx context.Context, id string) (*domain.Concept, error) {
	fetchURL, err := c.buildGetURL("/concepts/" + conceptIDPath(id))
	if err != nil {
		return nil, err
	}

	var record ConceptRecord
	if err := c.getJSON(ctx, fetchURL, "concept", id, &record); err != nil {
		return nil, err
	}

	concept, err := conceptToConcept(&record)
	if err != nil {
		return nil, err
	}
	return &concept, nil
}

// getJSON executes a GET request and decodes the JSON payload into out.
// When entity is non-empty, a 404 response maps to a NotFoundError for that
// entity and id.
func (c *Client) getJSON(ctx context.Context, rawURL, entity, id string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && entity != "" {
		return domain.NewNotFoundError(entity, id)
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	// Limit body to 10MB to prevent resource exhaustion.
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// statusError maps a non-success response to a typed domain error. Invalid
// request responses (400 and 403) unwrap to ErrInvalidInput so callers can
// branch on them.
func statusError(resp *http.Response) error {
	var cause error
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusForbidden {
		cause = domain.ErrInvalidInput
	}
	return domain.NewExternalAPIError(source, resp.StatusCode, readErrorMessage(resp.Body), cause)
}

// readErrorMessage extracts a human-readable message from an error payload.
// OpenAlex errors carry {"error": ..., "message": ...}; anything else is
// returned as raw text.
func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil || len(body) == 0 {
		return "no error detail"
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// buildSearchURL constructs a search URL with query, filter, pagination, and
// polite pool parameters.
func (c *Client) buildSearchURL(endpoint, query string, filters Filters, limit int) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	baseURL.Path = endpoint

	values := url.Values{}
	if query != "" {
		values.Set("search", query)
	}
	if encoded := filters.Encode(); encoded != "" {
		values.Set("filter", encoded)
	}

	perPage := limit
	if perPage <= 0 {
		perPage = c.config.PerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	values.Set("per_page", strconv.Itoa(perPage))

	// Add mailto for polite pool
	if c.config.Email != "" {
		values.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = values.Encode()
	return baseURL.String(), nil
}

// buildGetURL constructs a single-entity URL for the given path.
func (c *Client) buildGetURL(path string) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	// Use direct path concatenation - OpenAlex expects DOI URLs as-is in the
	// path and handles URL decoding on their side.
	baseURL.Path = path

	// Add mailto for polite pool
	if c.config.Email != "" {
		values := url.Values{}
		values.Set("mailto", c.config.Email)
		baseURL.RawQuery = values.Encode()
	}

	return baseURL.String(), nil
}

// workIDPath maps a work identifier to its API path segment.
// OpenAlex accepts OpenAlex IDs, DOIs, MAG IDs, PubMed IDs, and PMC IDs.
func workIDPath(id string) string {
	switch {
	case strings.HasPrefix(id, openAlexIDPrefix):
		// Full OpenAlex URL - extract the ID part
		return strings.TrimPrefix(id, openAlexIDPrefix)
	case strings.HasPrefix(id, "W"):
		// Short OpenAlex ID (e.g., W2741809807)
		return id
	case strings.HasPrefix(id, doiPrefix):
		// Full DOI URL
		return id
	case strings.HasPrefix(id, "10."):
		// Short DOI format - prefix with https://doi.org/
		return doiPrefix + id
	case strings.HasPrefix(id, "doi:"):
		// Canonical DOI format from our system
		return doiPrefix + strings.TrimPrefix(id, "doi:")
	default:
		// Assume it is an OpenAlex ID or other supported format
		return id
	}
}

// authorIDPath maps an author identifier to its API path segment.
func authorIDPath(id string) string {
	switch {
	case strings.HasPrefix(id, openAlexIDPrefix):
		return strings.TrimPrefix(id, openAlexIDPrefix)
	case strings.HasPrefix(id, "https://orcid.org/"):
		return id
	case strings.HasPrefix(id, "orcid:"):
		return "https://orcid.org/" + strings.TrimPrefix(id, "orcid:")
	case orcidPattern.MatchString(id):
		return "https://orcid.org/" + id
	default:
		return id
	}
}

// conceptIDPath maps a concept identifier to its API path segment.
func conceptIDPath(id string) string {
	if strings.HasPrefix(id, openAlexIDPrefix) {
		return strings.TrimPrefix(id, openAlexIDPrefix)
	}
	return id
}
