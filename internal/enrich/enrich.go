// Package enrich finds and enriches district contacts through the Clay API
// and classifies each contact into an outreach persona.
package enrich

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
	"github.com/k12safe/leadgen-cli/pkg/clay"
)

// DefaultTargetTitles are the role keywords searched for at each district.
var DefaultTargetTitles = []string{
	"Superintendent",
	"Director of Safety",
	"Chief of Safety",
	"Director of Security",
	"Chief Operations Officer",
	"COO",
	"Assistant Superintendent",
	"Chief of Police",
	"Director of Student Safety",
}

const defaultSearchLimit = 10

// Summary counts the outcome of an enrichment run.
type Summary struct {
	Districts       int `json:"districts"`
	Skipped         int `json:"skipped"`
	Contacts        int `json:"contacts"`
	Superintendents int `json:"superintendents"`
	SafetyDirectors int `json:"safety_directors"`
	COOs            int `json:"coos"`
}

// Engine runs contact enrichment over a district list, one district at a
// time. A failure on one district or one person is logged and skipped; it
// never aborts the run.
type Engine struct {
	client clay.Client
	titles []string
	limit  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTargetTitles overrides the role keywords searched for.
func WithTargetTitles(titles []string) Option {
	return func(e *Engine) {
		if len(titles) > 0 {
			e.titles = titles
		}
	}
}

// WithSearchLimit caps the number of people requested per district.
func WithSearchLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// NewEngine creates an enrichment engine over the given Clay client.
func NewEngine(client clay.Client, opts ...Option) *Engine {
	e := &Engine{
		client: client,
		titles: DefaultTargetTitles,
		limit:  defaultSearchLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run enriches every district in order and returns all of them, with
// counters for the run. Every input district appears in the output; one
// without a domain, or one whose search finds nobody, comes back with an
// empty contact list.
func (e *Engine) Run(ctx context.Context, districts []district.District) ([]district.District, Summary, error) {
	var (
		out     []district.District
		summary Summary
	)

	for _, d := range districts {
		if ctx.Err() != nil {
			return out, summary, ctx.Err()
		}

		if d.Domain == "" {
			zap.L().Info("enrich: no domain, skipping search",
				zap.String("district", d.Name))
			summary.Skipped++
			out = append(out, d)
			continue
		}

		d.Contacts = e.enrichDistrict(ctx, d)
		summary.Districts++
		out = append(out, d)

		for _, c := range d.Contacts {
			summary.Contacts++
			switch c.Persona {
			case district.PersonaSuperintendent:
				summary.Superintendents++
			case district.PersonaSafetyDirector:
				summary.SafetyDirectors++
			case district.PersonaCOO:
				summary.COOs++
			}
		}
	}

	zap.L().Info("enrich: run complete",
		zap.Int("districts", summary.Districts),
		zap.Int("skipped", summary.Skipped),
		zap.Int("contacts", summary.Contacts),
	)
	return out, summary, nil
}

// enrichDistrict searches for people at one district and enriches each hit.
// An enrichment failure keeps the person without contact channels.
func (e *Engine) enrichDistrict(ctx context.Context, d district.District) []district.Contact {
	people, err := e.client.FindPeople(ctx, clay.PeopleSearchRequest{
		CompanyDomain: d.Domain,
		Titles:        e.titles,
		Limit:         e.limit,
	})
	if err != nil {
		zap.L().Warn("enrich: people search failed",
			zap.String("district", d.Name),
			zap.String("domain", d.Domain),
			zap.Error(err),
		)
		return nil
	}

	var contacts []district.Contact
	for _, p := range people {
		c := district.Contact{
			FullName:  p.FullName,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Title:     p.Title,
			Persona:   district.ClassifyPersona(p.Title),
		}
		if c.FirstName == "" && c.LastName == "" {
			c.FirstName, c.LastName = splitName(p.FullName)
		}

		enr, err := e.client.EnrichPerson(ctx, clay.EnrichRequest{
			FullName:      p.FullName,
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			Title:         p.Title,
			CompanyDomain: d.Domain,
		})
		if err != nil {
			zap.L().Warn("enrich: person enrichment failed",
				zap.String("person", p.FullName),
				zap.String("district", d.Name),
				zap.Error(err),
			)
		} else {
			c.Email = enr.Email
			c.Phone = enr.Phone
			c.LinkedInURL = enr.LinkedInURL
		}

		contacts = append(contacts, c)
	}
	return contacts
}

// splitName derives first and last name from a full name, dropping a
// leading honorific.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) > 1 && strings.HasSuffix(parts[0], ".") {
		parts = parts[1:]
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
