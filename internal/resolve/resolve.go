// Package resolve finds a best-guess website domain for a district name.
package resolve

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultPatterns is the ordered candidate list tried against a generated
// slug. Earlier patterns are more common among Texas districts.
var DefaultPatterns = []string{
	"{slug}.org",
	"{slug}.net",
	"{slug}.us",
	"www.{slug}.org",
	"www.{slug}.net",
	"{slug}schools.org",
	"{slug}schools.net",
}

// Config is the immutable configuration for a Resolver.
type Config struct {
	// Overrides maps a district name to its known-correct domain. Hits here
	// are returned without any network probe.
	Overrides map[string]string
	// Patterns are candidate domain templates; "{slug}" is substituted.
	Patterns []string
	// ProbeTimeout bounds each existence probe. A site that cannot answer a
	// HEAD within it counts as a miss.
	ProbeTimeout time.Duration
	// ProbeRate is the probe rate limit in requests per second.
	ProbeRate float64
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		r.http = hc
	}
}

// Resolver resolves district names to domains: override table first, then
// slug-pattern candidates verified by a lightweight HEAD probe.
type Resolver struct {
	overrides map[string]string
	patterns  []string
	http      *http.Client
	limiter   *rate.Limiter
}

// New creates a Resolver from the given configuration. Zero-value config
// fields fall back to curated defaults.
func New(cfg Config, opts ...Option) *Resolver {
	overrides := DefaultOverrides()
	for k, v := range cfg.Overrides {
		overrides[k] = v
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	timeout := cfg.ProbeTimeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	probeRate := cfg.ProbeRate
	if probeRate <= 0 {
		probeRate = 2
	}
	r := &Resolver{
		overrides: overrides,
		patterns:  patterns,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(probeRate), 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Override returns the curated domain for a name, if one exists. Exposed
// separately so the pipeline can treat the table as authoritative even for
// records that already carry a derived domain.
func (r *Resolver) Override(name string) (string, bool) {
	d, ok := r.overrides[name]
	return d, ok
}

// Resolve returns a domain for the district name, or "" when none of the
// candidates is reachable. Not-found is a valid outcome, never an error.
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	if d, ok := r.overrides[name]; ok {
		return d
	}

	slug := Slug(name)
	if slug == "" {
		return ""
	}

	for _, pattern := range r.patterns {
		candidate := strings.ReplaceAll(pattern, "{slug}", slug)
		if r.probe(ctx, candidate) {
			return candidate
		}
	}
	return ""
}

// Slug converts a district name to a domain slug: lowercase, expand the
// district-type phrases (longest first, so "consolidated independent school
// district" becomes "cisd" rather than "consolidatedisd"), then strip
// everything that is not a letter or digit.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "consolidated independent school district", "cisd")
	s = strings.ReplaceAll(s, "independent school district", "isd")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// probe checks domain existence with a HEAD request, following redirects.
// Any status below 400 counts as reachable; errors and timeouts count as not.
func (r *Resolver) probe(ctx context.Context, domain string) bool {
	if err := r.limiter.Wait(ctx); err != nil {
		return false
	}

	probeURL := "https://www." + domain
	if strings.HasPrefix(domain, "www.") {
		probeURL = "https://" + domain
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := r.http.Do(req)
	if err != nil {
		zap.L().Debug("resolve: probe failed", zap.String("domain", domain), zap.Error(err))
		return false
	}
	_ = resp.Body.Close()

	return resp.StatusCode < 400
}
