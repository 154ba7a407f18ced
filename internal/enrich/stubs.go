package enrich

import (
	"context"
	"sort"
	"strings"

	"github.com/k12safe/leadgen-cli/internal/district"
	"github.com/k12safe/leadgen-cli/pkg/clay"
)

// StubClayClient serves a curated Texas dataset for demo runs so the full
// pipeline can be exercised without credentials.
type StubClayClient struct{}

var _ clay.Client = (*StubClayClient)(nil)

// demoPerson pairs a searchable person with their enrichment result.
type demoPerson struct {
	person clay.Person
	enrich clay.Enrichment
}

var demoPeople = map[string][]demoPerson{
	"leanderisd.org": {
		{
			person: clay.Person{FullName: "Dr. Bruce Gearing", FirstName: "Bruce", LastName: "Gearing", Title: "Superintendent", Company: "Leander ISD", Domain: "leanderisd.org"},
			enrich: clay.Enrichment{Email: "bruce.gearing@leanderisd.org", Phone: "(512) 570-0000", LinkedInURL: "https://linkedin.com/in/bruce-gearing"},
		},
		{
			person: clay.Person{FullName: "Shā Rogers", FirstName: "Shā", LastName: "Rogers", Title: "Chief of Safety & Security", Company: "Leander ISD", Domain: "leanderisd.org"},
			enrich: clay.Enrichment{Email: "sha.rogers@leanderisd.org", Phone: "(512) 570-0024", LinkedInURL: "https://linkedin.com/in/sha-rogers"},
		},
	},
	"friscoisd.org": {
		{
			person: clay.Person{FullName: "Dr. Mike Waldrip", FirstName: "Mike", LastName: "Waldrip", Title: "Superintendent", Company: "Frisco ISD", Domain: "friscoisd.org"},
			enrich: clay.Enrichment{Email: "mike.waldrip@friscoisd.org", Phone: "(469) 633-6000", LinkedInURL: "https://linkedin.com/in/mike-waldrip"},
		},
	},
	"kellerisd.net": {
		{
			person: clay.Person{FullName: "Dr. Rick Westfall", FirstName: "Rick", LastName: "Westfall", Title: "Superintendent", Company: "Keller ISD", Domain: "kellerisd.net"},
			enrich: clay.Enrichment{Email: "rick.westfall@kellerisd.net", Phone: "(817) 744-1000", LinkedInURL: "https://linkedin.com/in/rick-westfall"},
		},
	},
	"georgetownisd.org": {
		{
			person: clay.Person{FullName: "Dr. Fred Brent", FirstName: "Fred", LastName: "Brent", Title: "Superintendent", Company: "Georgetown ISD", Domain: "georgetownisd.org"},
			enrich: clay.Enrichment{Email: "fred.brent@georgetownisd.org", Phone: "(512) 943-5000", LinkedInURL: "https://linkedin.com/in/fred-brent"},
		},
	},
	"roundrockisd.org": {
		{
			person: clay.Person{FullName: "Dr. Hafedh Azaiez", FirstName: "Hafedh", LastName: "Azaiez", Title: "Superintendent", Company: "Round Rock ISD", Domain: "roundrockisd.org"},
			enrich: clay.Enrichment{Email: "hafedh_azaiez@roundrockisd.org", Phone: "(512) 464-5000", LinkedInURL: "https://linkedin.com/in/hafedh-azaiez"},
		},
	},
	"humbleisd.net": {
		{
			person: clay.Person{FullName: "Dr. Elizabeth Fagen", FirstName: "Elizabeth", LastName: "Fagen", Title: "Superintendent", Company: "Humble ISD", Domain: "humbleisd.net"},
			enrich: clay.Enrichment{Email: "elizabeth.fagen@humbleisd.net", Phone: "(281) 641-1000", LinkedInURL: "https://linkedin.com/in/elizabeth-fagen"},
		},
	},
	"prosper-isd.net": {
		{
			person: clay.Person{FullName: "Dr. Holly Ferguson", FirstName: "Holly", LastName: "Ferguson", Title: "Superintendent", Company: "Prosper ISD", Domain: "prosper-isd.net"},
			enrich: clay.Enrichment{Email: "holly.ferguson@prosper-isd.net", Phone: "(469) 219-2000", LinkedInURL: "https://linkedin.com/in/holly-ferguson"},
		},
	},
	"ltisdschools.org": {
		{
			person: clay.Person{FullName: "Dr. Paul Norton", FirstName: "Paul", LastName: "Norton", Title: "Superintendent", Company: "Lake Travis ISD", Domain: "ltisdschools.org"},
			enrich: clay.Enrichment{Email: "paul.norton@ltisdschools.org", Phone: "(512) 533-6000", LinkedInURL: "https://linkedin.com/in/paul-norton"},
		},
	},
	"boerneisd.net": {
		{
			person: clay.Person{FullName: "Dr. Thomas Price", FirstName: "Thomas", LastName: "Price", Title: "Superintendent", Company: "Boerne ISD", Domain: "boerneisd.net"},
			enrich: clay.Enrichment{Email: "thomas.price@boerneisd.net", Phone: "(830) 357-2000", LinkedInURL: "https://linkedin.com/in/thomas-price"},
		},
	},
	"aledoisd.org": {
		{
			person: clay.Person{FullName: "Dr. Susan Bohn", FirstName: "Susan", LastName: "Bohn", Title: "Superintendent", Company: "Aledo ISD", Domain: "aledoisd.org"},
			enrich: clay.Enrichment{Email: "susan.bohn@aledoisd.org", Phone: "(817) 441-5327", LinkedInURL: "https://linkedin.com/in/susan-bohn"},
		},
	},
}

// FindPeople implements clay.Client against the demo dataset.
func (s *StubClayClient) FindPeople(_ context.Context, req clay.PeopleSearchRequest) ([]clay.Person, error) {
	var out []clay.Person
	for _, dp := range demoPeople[req.CompanyDomain] {
		if len(req.Titles) > 0 && !matchesTitles(dp.person.Title, req.Titles) {
			continue
		}
		out = append(out, dp.person)
		if req.Limit > 0 && len(out) == req.Limit {
			break
		}
	}
	return out, nil
}

// EnrichPerson implements clay.Client against the demo dataset.
func (s *StubClayClient) EnrichPerson(_ context.Context, req clay.EnrichRequest) (*clay.Enrichment, error) {
	for _, dp := range demoPeople[req.CompanyDomain] {
		if dp.person.FirstName == req.FirstName && dp.person.LastName == req.LastName {
			e := dp.enrich
			return &e, nil
		}
	}
	return &clay.Enrichment{}, nil
}

var demoEnrollment = map[string]int{
	"leanderisd.org":    42000,
	"friscoisd.org":     67000,
	"kellerisd.net":     34000,
	"georgetownisd.org": 14000,
	"roundrockisd.org":  47000,
	"humbleisd.net":     47000,
	"prosper-isd.net":   30000,
	"ltisdschools.org":  12000,
	"boerneisd.net":     10000,
	"aledoisd.org":      8400,
}

// DemoDistricts returns the districts covered by the demo dataset, sorted
// by enrollment descending.
func DemoDistricts() []district.District {
	var out []district.District
	for domain, people := range demoPeople {
		out = append(out, district.District{
			Name:       people[0].person.Company,
			Domain:     domain,
			Enrollment: demoEnrollment[domain],
			State:      "TX",
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Enrollment != out[j].Enrollment {
			return out[i].Enrollment > out[j].Enrollment
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func matchesTitles(title string, keywords []string) bool {
	t := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(t, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
