// Package district defines the canonical record types for the lead pipeline.
package district

import (
	"regexp"
	"strings"
	"time"
)

// Persona classifies a contact by outreach role.
type Persona string

// Known personas. Classification is closed: anything unrecognized is PersonaOther.
const (
	PersonaSuperintendent Persona = "superintendent"
	PersonaSafetyDirector Persona = "safety_director"
	PersonaCOO            Persona = "coo"
	PersonaOther          Persona = "other"
)

// District is the canonical record for one school district. It is created
// when first observed by any source provider, filled in by fusion and
// domain resolution, and carries its contacts after enrichment. It is never
// deleted within a run; it is the unit of output.
type District struct {
	Name         string    `json:"name" db:"district_name"`
	Slug         string    `json:"slug,omitempty"`
	Domain       string    `json:"domain,omitempty" db:"domain"`
	Website      string    `json:"website,omitempty"`
	City         string    `json:"city,omitempty" db:"city"`
	State        string    `json:"state,omitempty"`
	Enrollment   int       `json:"enrollment" db:"enrollment"`
	TribuneURL   string    `json:"tribune_url,omitempty"`
	WikipediaURL string    `json:"wikipedia_url,omitempty"`
	Sources      []string  `json:"sources,omitempty"`
	ScrapedAt    time.Time `json:"scraped_at,omitempty"`
	Contacts     []Contact `json:"contacts,omitempty"`
}

// Contact is one person at a district.
type Contact struct {
	FullName    string  `json:"full_name" db:"full_name"`
	FirstName   string  `json:"first_name" db:"first_name"`
	LastName    string  `json:"last_name" db:"last_name"`
	Title       string  `json:"title" db:"title"`
	Persona     Persona `json:"persona" db:"persona"`
	Email       string  `json:"email,omitempty" db:"email"`
	Phone       string  `json:"phone,omitempty" db:"phone"`
	LinkedInURL string  `json:"linkedin_url,omitempty" db:"linkedin_url"`
}

// ClassifyPersona maps a free-text job title to a persona. Matching is
// case-insensitive substring, first match wins, in this order:
// superintendent, then safety/security/police, then coo/operations.
func ClassifyPersona(title string) Persona {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "superintendent"):
		return PersonaSuperintendent
	case containsAny(t, "safety", "security", "police"):
		return PersonaSafetyDirector
	case containsAny(t, "coo", "operations"):
		return PersonaCOO
	default:
		return PersonaOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var websiteDomainRe = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)`)

// DomainFromWebsite derives a bare domain from a full URL by stripping the
// scheme and a leading "www.". Returns "" when the URL does not parse.
func DomainFromWebsite(website string) string {
	m := websiteDomainRe.FindStringSubmatch(strings.TrimSpace(website))
	if m == nil {
		return ""
	}
	return m[1]
}

// HasSource reports whether the record already carries the given provenance tag.
func (d *District) HasSource(tag string) bool {
	for _, s := range d.Sources {
		if s == tag {
			return true
		}
	}
	return false
}

// AddSource appends a provenance tag if not already present.
func (d *District) AddSource(tag string) {
	if tag == "" || d.HasSource(tag) {
		return
	}
	d.Sources = append(d.Sources, tag)
}
