package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/k12safe/leadgen-cli/internal/push"
	"github.com/k12safe/leadgen-cli/pkg/instantly"
)

var campaignsDemo bool

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List Instantly campaigns and their persona routing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var client instantly.Client
		if campaignsDemo {
			client = &push.StubInstantlyClient{}
		} else {
			if cfg.Instantly.Key == "" {
				return eris.New("campaigns: instantly API key required (set LEADGEN_INSTANTLY_KEY or use --demo)")
			}
			client = instantly.NewClient(cfg.Instantly.Key,
				instantly.WithBaseURL(cfg.Instantly.BaseURL),
				instantly.WithRateLimit(cfg.Instantly.RateLimit),
			)
		}

		campaigns, err := client.ListCampaigns(cmd.Context())
		if err != nil {
			return err
		}

		// Invert the persona map so each campaign shows what routes to it.
		routing := make(map[string][]string)
		for persona, id := range cfg.Instantly.Campaigns {
			routing[id] = append(routing[id], persona)
		}

		for _, c := range campaigns {
			cmd.Printf("%-40s %-10s", c.ID, c.Status)
			if personas, ok := routing[c.ID]; ok {
				cmd.Printf(" <- %v", personas)
			}
			cmd.Println()
		}
		return nil
	},
}

func init() {
	campaignsCmd.Flags().BoolVar(&campaignsDemo, "demo", false, "use the stub client")
	rootCmd.AddCommand(campaignsCmd)
}
