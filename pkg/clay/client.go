package clay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the Clay v1 API.
const defaultBaseURL = "https://api.clay.com/v1"

// Client defines the Clay enrichment API operations.
type Client interface {
	FindPeople(ctx context.Context, req PeopleSearchRequest) ([]Person, error)
	EnrichPerson(ctx context.Context, req EnrichRequest) (*Enrichment, error)
}

// PeopleSearchRequest is the body for POST /people/search.
type PeopleSearchRequest struct {
	CompanyDomain string   `json:"company_domain"`
	Titles        []string `json:"titles,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// peopleSearchResponse is the response from POST /people/search.
type peopleSearchResponse struct {
	People []Person `json:"people"`
}

// Person is a single result from a people search.
type Person struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Domain    string `json:"company_domain"`
}

// EnrichRequest is the body for POST /people/enrich.
type EnrichRequest struct {
	FullName      string `json:"full_name,omitempty"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Title         string `json:"title"`
	CompanyDomain string `json:"company_domain"`
}

// Enrichment is the response from POST /people/enrich.
type Enrichment struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LinkedInURL string `json:"linkedin_url"`
}

// APIError is returned when Clay responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clay: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Clay client. Requests are rate limited; there are
// no automatic retries, a failed call surfaces to the caller.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FindPeople(ctx context.Context, req PeopleSearchRequest) ([]Person, error) {
	var resp peopleSearchResponse
	if err := c.post(ctx, "/people/search", req, &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clay: find people at %s", req.CompanyDomain))
	}
	return resp.People, nil
}

func (c *httpClient) EnrichPerson(ctx context.Context, req EnrichRequest) (*Enrichment, error) {
	var resp Enrichment
	if err := c.post(ctx, "/people/enrich", req, &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clay: enrich %s", req.FullName))
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "rate limiter wait")
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
