// Package source provides district record providers: public-site scrapers
// and file loaders. Each provider returns partial records keyed by district
// name; the fusion engine combines them.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// Provider produces partial district records from one external source.
type Provider interface {
	Name() string
	Districts(ctx context.Context) ([]district.District, error)
}

// Options configures a scraping provider.
type Options struct {
	// BaseURL overrides the provider's default endpoint (for testing).
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RateLimit is the request rate in requests per second.
	RateLimit float64
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func (o *Options) applyDefaults() {
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 2
	}
}

// fetchHTML GETs a URL (rate limited, custom UA) and parses the body as HTML.
func fetchHTML(ctx context.Context, client *http.Client, limiter *rate.Limiter, ua, rawURL string) (*html.Node, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "source: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "source: create request %s", rawURL)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "source: fetch %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("source: unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "source: parse html from %s", rawURL)
	}
	return doc, nil
}
