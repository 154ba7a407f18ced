package source

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// SourceNCES is the provenance tag for NCES district-search records.
const SourceNCES = "nces"

const defaultNCESURL = "https://nces.ed.gov/ccd/districtsearch/district_list.asp"

// NCESProvider queries the NCES Common Core of Data district search for
// Texas (state code 48) and parses the result table. NCES supplies the
// authoritative city for each district.
type NCESProvider struct {
	baseURL string
	ua      string
	http    *http.Client
	limiter *rate.Limiter
}

// NewNCESProvider creates an NCESProvider.
func NewNCESProvider(opts Options) *NCESProvider {
	opts.applyDefaults()
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultNCESURL
	}
	return &NCESProvider{
		baseURL: baseURL,
		ua:      opts.UserAgent,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// Name implements Provider.
func (p *NCESProvider) Name() string { return SourceNCES }

// Districts fetches the Texas result table and extracts name and city from
// each row.
func (p *NCESProvider) Districts(ctx context.Context) ([]district.District, error) {
	q := url.Values{}
	q.Set("State", "48")
	q.Set("BasicPageNum", "1")
	q.Set("NumSearchResults", "1500")

	doc, err := fetchHTML(ctx, p.http, p.limiter, p.ua, p.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var out []district.District
	seen := make(map[string]bool)

	for _, tr := range elements(doc, "tr") {
		cells := elements(tr, "td")
		if len(cells) < 3 {
			continue
		}
		name := nodeText(cells[0])
		city := nodeText(cells[1])
		if name == "" || seen[name] {
			continue
		}
		if !strings.Contains(name, "ISD") &&
			!strings.Contains(name, "CISD") &&
			!strings.Contains(name, "School") {
			continue
		}
		seen[name] = true

		out = append(out, district.District{
			Name:    name,
			City:    city,
			Sources: []string{SourceNCES},
		})
	}

	zap.L().Info("nces: districts found", zap.Int("count", len(out)))
	return out, nil
}
