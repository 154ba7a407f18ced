// Package push routes enriched leads into Instantly campaigns by persona.
package push

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
	"github.com/k12safe/leadgen-cli/pkg/instantly"
)

// DefaultCampaigns maps persona to campaign ID for the current quarter's
// Texas outreach.
var DefaultCampaigns = map[string]string{
	string(district.PersonaSuperintendent): "camp_tx_superintendents_q1_2026",
	string(district.PersonaSafetyDirector): "camp_tx_safety_directors_q1_2026",
}

// Lead is one outbound lead loaded from an enriched CSV.
type Lead struct {
	Email           string            `json:"email"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	CompanyName     string            `json:"company_name"`
	Title           string            `json:"title"`
	Persona         string            `json:"persona"`
	CustomVariables map[string]string `json:"custom_variables,omitempty"`
}

// LogEntry records the outcome of one push attempt.
type LogEntry struct {
	Success    bool      `json:"success"`
	Email      string    `json:"email"`
	CampaignID string    `json:"campaign_id"`
	LeadID     string    `json:"lead_id,omitempty"`
	Error      string    `json:"error,omitempty"`
	PushedAt   time.Time `json:"pushed_at"`
}

// Result aggregates a push run.
type Result struct {
	Total      int            `json:"total"`
	Succeeded  int            `json:"succeeded"`
	Failed     int            `json:"failed"`
	ByCampaign map[string]int `json:"by_campaign"`
}

// Pipeline pushes leads one at a time, routing each by persona. A lead
// whose persona has no campaign counts as failed and the run continues.
type Pipeline struct {
	client    instantly.Client
	campaigns map[string]string
}

// NewPipeline creates a push pipeline. A nil campaigns map falls back to
// DefaultCampaigns.
func NewPipeline(client instantly.Client, campaigns map[string]string) *Pipeline {
	if campaigns == nil {
		campaigns = DefaultCampaigns
	}
	return &Pipeline{client: client, campaigns: campaigns}
}

// Run pushes every lead in order and returns the aggregate result plus a
// per-lead log.
func (p *Pipeline) Run(ctx context.Context, leads []Lead) (Result, []LogEntry) {
	result := Result{
		Total:      len(leads),
		ByCampaign: make(map[string]int),
	}
	log := make([]LogEntry, 0, len(leads))

	for i, lead := range leads {
		campaignID, ok := p.campaigns[lead.Persona]
		if !ok {
			zap.L().Warn("push: no campaign for persona",
				zap.String("persona", lead.Persona),
				zap.String("email", lead.Email))
			result.Failed++
			log = append(log, LogEntry{
				Email:    lead.Email,
				Error:    "no campaign for persona " + lead.Persona,
				PushedAt: time.Now().UTC(),
			})
			continue
		}

		zap.L().Info("push: sending lead",
			zap.Int("n", i+1),
			zap.Int("total", len(leads)),
			zap.String("email", lead.Email),
			zap.String("campaign", campaignID))

		entry := LogEntry{
			Email:      lead.Email,
			CampaignID: campaignID,
			PushedAt:   time.Now().UTC(),
		}

		resp, err := p.client.AddLead(ctx, campaignID, instantly.Lead{
			Email:           lead.Email,
			FirstName:       lead.FirstName,
			LastName:        lead.LastName,
			CompanyName:     lead.CompanyName,
			Personalization: lead.Title,
			CustomVariables: lead.CustomVariables,
		})
		if err != nil {
			zap.L().Error("push: lead failed",
				zap.String("email", lead.Email),
				zap.Error(err))
			entry.Error = err.Error()
			result.Failed++
		} else {
			entry.Success = true
			entry.LeadID = resp.LeadID
			result.Succeeded++
			result.ByCampaign[campaignID]++
		}
		log = append(log, entry)
	}

	zap.L().Info("push: run complete",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return result, log
}

// LoadLeads reads leads from an enriched CSV. Rows without an email are
// skipped; the company name falls back from district_name to company_name.
func LoadLeads(path string) ([]Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "push: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "push: read header from %s", path)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	field := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := idx[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	var leads []Lead
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "push: read row from %s", path)
		}

		email := field(row, "email")
		if email == "" {
			continue
		}

		persona := field(row, "persona")
		if persona == "" {
			persona = string(district.PersonaSuperintendent)
		}

		lead := Lead{
			Email:       email,
			FirstName:   field(row, "first_name"),
			LastName:    field(row, "last_name"),
			CompanyName: field(row, "district_name", "company_name"),
			Title:       field(row, "title"),
			Persona:     persona,
			CustomVariables: map[string]string{
				"enrollment":    field(row, "enrollment"),
				"city":          field(row, "city"),
				"district_name": field(row, "district_name"),
			},
		}
		leads = append(leads, lead)
	}
	return leads, nil
}
