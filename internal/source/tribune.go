package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/k12safe/leadgen-cli/internal/district"
)

// SourceTribune is the provenance tag for Texas Tribune records.
const SourceTribune = "texas_tribune"

const defaultTribuneBaseURL = "https://schools.texastribune.org"

// TribuneProvider scrapes the Texas Tribune Public Schools Explorer, which
// lists every Texas public school district paginated by first letter.
type TribuneProvider struct {
	baseURL string
	ua      string
	http    *http.Client
	limiter *rate.Limiter
}

// NewTribuneProvider creates a TribuneProvider.
func NewTribuneProvider(opts Options) *TribuneProvider {
	opts.applyDefaults()
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultTribuneBaseURL
	}
	return &TribuneProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		ua:      opts.UserAgent,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// Name implements Provider.
func (p *TribuneProvider) Name() string { return SourceTribune }

// Districts fetches the A-Z letter pages and extracts district name, slug,
// and detail-page URL. A failed letter page is logged and skipped; the
// remaining letters still contribute.
func (p *TribuneProvider) Districts(ctx context.Context) ([]district.District, error) {
	var out []district.District
	seen := make(map[string]bool)

	for letter := 'A'; letter <= 'Z'; letter++ {
		pageURL := fmt.Sprintf("%s/districts/?letter=%c", p.baseURL, letter)

		doc, err := fetchHTML(ctx, p.http, p.limiter, p.ua, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			zap.L().Warn("tribune: letter page failed",
				zap.String("letter", string(letter)),
				zap.Error(err),
			)
			continue
		}

		for _, d := range p.parseLetterPage(doc) {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			out = append(out, d)
		}
	}

	zap.L().Info("tribune: districts found", zap.Int("count", len(out)))
	return out, nil
}

// parseLetterPage extracts district links from one letter page.
func (p *TribuneProvider) parseLetterPage(doc *html.Node) []district.District {
	var out []district.District
	for _, a := range collectAnchors(doc) {
		if !strings.Contains(a.href, "/districts/") {
			continue
		}
		name := a.text
		// Skip navigation links.
		if name == "" || name == "Districts" || name == "Schools" || name == "?" {
			continue
		}
		slug := strings.Trim(a.href[strings.LastIndex(a.href, "/districts/")+len("/districts/"):], "/")
		if slug == "" {
			continue
		}
		out = append(out, district.District{
			Name:       name,
			Slug:       slug,
			TribuneURL: p.baseURL + a.href,
			Sources:    []string{SourceTribune},
		})
	}
	return out
}

var enrollmentRe = regexp.MustCompile(`(?i)([\d,]+)\s*students`)

// Detail fetches the district's Tribune page and fills enrollment, website,
// and city where the page provides them. Failures leave the record unchanged.
func (p *TribuneProvider) Detail(ctx context.Context, d *district.District) {
	if d.TribuneURL == "" {
		return
	}

	doc, err := fetchHTML(ctx, p.http, p.limiter, p.ua, d.TribuneURL)
	if err != nil {
		zap.L().Debug("tribune: detail fetch failed",
			zap.String("district", d.Name),
			zap.Error(err),
		)
		return
	}

	if m := enrollmentRe.FindStringSubmatch(nodeText(doc)); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			d.Enrollment = n
		}
	}

	if site := externalWebsite(doc); site != "" {
		d.Website = site
	}

	if loc := findElement(doc, func(n *html.Node) bool {
		return strings.Contains(attr(n, "class"), "location")
	}); loc != nil {
		d.City = nodeText(loc)
	}
}

// externalWebsite returns the first outbound link on the page that is not a
// Tribune or social-media link.
func externalWebsite(doc *html.Node) string {
	a := findElement(doc, func(n *html.Node) bool {
		if n.Data != "a" || attr(n, "target") != "_blank" {
			return false
		}
		href := attr(n, "href")
		return strings.HasPrefix(href, "http") &&
			!strings.Contains(href, "texastribune") &&
			!strings.Contains(href, "facebook")
	})
	if a == nil {
		return ""
	}
	return attr(a, "href")
}
