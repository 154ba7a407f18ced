package push

import (
	"context"
	"strings"

	"github.com/k12safe/leadgen-cli/pkg/instantly"
)

// StubInstantlyClient simulates successful pushes for demo runs. Every lead
// is accepted with a synthetic lead ID derived from the email local part.
type StubInstantlyClient struct {
	Added []instantly.Lead
}

var _ instantly.Client = (*StubInstantlyClient)(nil)

func (s *StubInstantlyClient) ListCampaigns(_ context.Context) ([]instantly.Campaign, error) {
	return []instantly.Campaign{
		{ID: DefaultCampaigns["superintendent"], Name: "TX Superintendents Q1 2026", Status: "active"},
		{ID: DefaultCampaigns["safety_director"], Name: "TX Safety Directors Q1 2026", Status: "active"},
	}, nil
}

func (s *StubInstantlyClient) AddLead(ctx context.Context, campaignID string, lead instantly.Lead) (*instantly.AddLeadResponse, error) {
	resp, err := s.AddLeadsBulk(ctx, campaignID, []instantly.Lead{lead})
	if err != nil {
		return nil, err
	}
	resp.LeadID = "demo_lead_" + localPart(lead.Email)
	return resp, nil
}

func (s *StubInstantlyClient) AddLeadsBulk(_ context.Context, _ string, leads []instantly.Lead) (*instantly.AddLeadResponse, error) {
	s.Added = append(s.Added, leads...)
	return &instantly.AddLeadResponse{Status: "success", Uploaded: len(leads)}, nil
}

func (s *StubInstantlyClient) GetLeadStatus(_ context.Context, email string) (*instantly.LeadStatus, error) {
	return &instantly.LeadStatus{Email: email, Status: "added"}, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// DemoLeads returns the curated demo lead set used by --demo runs.
func DemoLeads() []Lead {
	return []Lead{
		{
			Email: "bruce.gearing@leanderisd.org", FirstName: "Bruce", LastName: "Gearing",
			CompanyName: "Leander ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "42000", "city": "Leander"},
		},
		{
			Email: "sha.rogers@leanderisd.org", FirstName: "Shā", LastName: "Rogers",
			CompanyName: "Leander ISD", Title: "Chief of Safety & Security", Persona: "safety_director",
			CustomVariables: map[string]string{"enrollment": "42000", "city": "Leander"},
		},
		{
			Email: "mike.waldrip@friscoisd.org", FirstName: "Mike", LastName: "Waldrip",
			CompanyName: "Frisco ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "67000", "city": "Frisco"},
		},
		{
			Email: "rick.westfall@kellerisd.net", FirstName: "Rick", LastName: "Westfall",
			CompanyName: "Keller ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "34000", "city": "Keller"},
		},
		{
			Email: "fred.brent@georgetownisd.org", FirstName: "Fred", LastName: "Brent",
			CompanyName: "Georgetown ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "14000", "city": "Georgetown"},
		},
		{
			Email: "hafedh_azaiez@roundrockisd.org", FirstName: "Hafedh", LastName: "Azaiez",
			CompanyName: "Round Rock ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "47000", "city": "Round Rock"},
		},
		{
			Email: "elizabeth.fagen@humbleisd.net", FirstName: "Elizabeth", LastName: "Fagen",
			CompanyName: "Humble ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "47000", "city": "Humble"},
		},
		{
			Email: "holly.ferguson@prosper-isd.net", FirstName: "Holly", LastName: "Ferguson",
			CompanyName: "Prosper ISD", Title: "Superintendent", Persona: "superintendent",
			CustomVariables: map[string]string{"enrollment": "30000", "city": "Prosper"},
		},
	}
}
