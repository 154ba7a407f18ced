package source

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// SourceWikipedia is the provenance tag for Wikipedia records.
const SourceWikipedia = "wikipedia"

const defaultWikipediaURL = "https://en.wikipedia.org/wiki/List_of_school_districts_in_Texas"

// WikipediaProvider scrapes the "List of school districts in Texas" article.
// It yields names and article URLs only; enrollment and websites come from
// other sources.
type WikipediaProvider struct {
	pageURL string
	ua      string
	http    *http.Client
	limiter *rate.Limiter
}

// NewWikipediaProvider creates a WikipediaProvider. Options.BaseURL, when
// set, is the full article URL.
func NewWikipediaProvider(opts Options) *WikipediaProvider {
	opts.applyDefaults()
	pageURL := opts.BaseURL
	if pageURL == "" {
		pageURL = defaultWikipediaURL
	}
	return &WikipediaProvider{
		pageURL: pageURL,
		ua:      opts.UserAgent,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// Name implements Provider.
func (p *WikipediaProvider) Name() string { return SourceWikipedia }

// Districts fetches the list article and extracts district article links.
func (p *WikipediaProvider) Districts(ctx context.Context) ([]district.District, error) {
	doc, err := fetchHTML(ctx, p.http, p.limiter, p.ua, p.pageURL)
	if err != nil {
		return nil, err
	}

	var out []district.District
	seen := make(map[string]bool)

	for _, a := range collectAnchors(doc) {
		if !strings.Contains(a.href, "/wiki/") {
			continue
		}
		// Disambiguation and meta pages never describe a single district.
		if strings.Contains(a.href, "disambiguation") || strings.Contains(a.href, ":") {
			continue
		}
		if !looksLikeDistrictName(a.text) {
			continue
		}
		if seen[a.text] {
			continue
		}
		seen[a.text] = true

		out = append(out, district.District{
			Name:         a.text,
			WikipediaURL: "https://en.wikipedia.org" + a.href,
			Sources:      []string{SourceWikipedia},
		})
	}

	zap.L().Info("wikipedia: districts found", zap.Int("count", len(out)))
	return out, nil
}

func looksLikeDistrictName(text string) bool {
	return strings.Contains(text, "ISD") ||
		strings.Contains(text, "CISD") ||
		strings.Contains(text, "Independent School District") ||
		strings.Contains(text, "Consolidated")
}
