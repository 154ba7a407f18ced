package instantly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the Instantly v1 API.
const defaultBaseURL = "https://api.instantly.ai/api/v1"

// Client defines the Instantly campaign API operations.
type Client interface {
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	AddLead(ctx context.Context, campaignID string, lead Lead) (*AddLeadResponse, error)
	AddLeadsBulk(ctx context.Context, campaignID string, leads []Lead) (*AddLeadResponse, error)
	GetLeadStatus(ctx context.Context, email string) (*LeadStatus, error)
}

// Campaign is one entry from GET /campaign/list.
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Lead is the payload for adding a lead to a campaign.
type Lead struct {
	Email           string            `json:"email"`
	FirstName       string            `json:"first_name,omitempty"`
	LastName        string            `json:"last_name,omitempty"`
	CompanyName     string            `json:"company_name,omitempty"`
	Personalization string            `json:"personalization,omitempty"`
	CustomVariables map[string]string `json:"custom_variables,omitempty"`
}

// addLeadRequest is the body for POST /lead/add.
type addLeadRequest struct {
	CampaignID string `json:"campaign_id"`
	Leads      []Lead `json:"leads"`
}

// AddLeadResponse is the response from POST /lead/add.
type AddLeadResponse struct {
	Status   string `json:"status"`
	LeadID   string `json:"lead_id,omitempty"`
	Uploaded int    `json:"leads_uploaded,omitempty"`
}

// LeadStatus is the response from GET /lead/get.
type LeadStatus struct {
	Email      string `json:"email"`
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status"`
}

// APIError is returned when Instantly responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("instantly: HTTP %d: %s", e.StatusCode, e.Body)
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

// httpClient implements Client using net/http. Instantly v1 authenticates
// with an api_key query parameter rather than a header.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Instantly client.
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

func (c *httpClient) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var resp []Campaign
	if err := c.get(ctx, "/campaign/list", nil, &resp); err != nil {
		return nil, eris.Wrap(err, "instantly: list campaigns")
	}
	return resp, nil
}

func (c *httpClient) AddLead(ctx context.Context, campaignID string, lead Lead) (*AddLeadResponse, error) {
	return c.AddLeadsBulk(ctx, campaignID, []Lead{lead})
}

func (c *httpClient) AddLeadsBulk(ctx context.Context, campaignID string, leads []Lead) (*AddLeadResponse, error) {
	var resp AddLeadResponse
	body := addLeadRequest{CampaignID: campaignID, Leads: leads}
	if err := c.post(ctx, "/lead/add", body, &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("instantly: add %d leads to %s", len(leads), campaignID))
	}
	return &resp, nil
}

func (c *httpClient) GetLeadStatus(ctx context.Context, email string) (*LeadStatus, error) {
	var resp LeadStatus
	if err := c.get(ctx, "/lead/get", url.Values{"email": {email}}, &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("instantly: get lead status %s", email))
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, nil), bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *httpClient) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path, query), nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}

	return c.do(req, out)
}

func (c *httpClient) requestURL(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	return c.baseURL + path + "?" + query.Encode()
}

func (c *httpClient) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return eris.Wrap(err, "rate limiter wait")
	}

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
