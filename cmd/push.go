package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/push"
	"github.com/k12safe/leadgen-cli/internal/sink"
	"github.com/k12safe/leadgen-cli/internal/store"
	"github.com/k12safe/leadgen-cli/pkg/instantly"
)

var (
	pushInput    string
	pushCampaign string
	pushLogPath  string
	pushDemo     bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push enriched leads into Instantly campaigns",
	Long: `Loads leads from an enriched CSV and adds each one to the Instantly
campaign mapped to its persona. Leads whose persona has no campaign count
as failed; the run always continues to the next lead.

Examples:
  # Demo mode, curated leads, no API key needed
  leadgen-cli push --demo

  # Live push routed by persona
  leadgen-cli push --input enriched_leads.csv

  # Route every lead to one campaign regardless of persona
  leadgen-cli push --input enriched_leads.csv --campaign camp_xyz`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var (
			leads  []push.Lead
			client instantly.Client
			err    error
		)
		if pushDemo {
			leads = push.DemoLeads()
			client = &push.StubInstantlyClient{}
		} else {
			if cfg.Instantly.Key == "" {
				return eris.New("push: instantly API key required (set LEADGEN_INSTANTLY_KEY or use --demo)")
			}
			if pushInput == "" {
				return eris.New("push: --input required in live mode")
			}
			leads, err = push.LoadLeads(pushInput)
			if err != nil {
				return err
			}
			client = instantly.NewClient(cfg.Instantly.Key,
				instantly.WithBaseURL(cfg.Instantly.BaseURL),
				instantly.WithRateLimit(cfg.Instantly.RateLimit),
			)
		}

		campaigns := cfg.Instantly.Campaigns
		if pushCampaign != "" {
			// Override routes every persona in the map to one campaign.
			campaigns = make(map[string]string, len(cfg.Instantly.Campaigns))
			for persona := range cfg.Instantly.Campaigns {
				campaigns[persona] = pushCampaign
			}
		}

		runStore, err := store.NewSQLite(cfg.Store.RunDB)
		if err != nil {
			return err
		}
		defer runStore.Close()
		if err := runStore.Migrate(ctx); err != nil {
			return err
		}
		run, err := runStore.CreateRun(ctx, "push")
		if err != nil {
			return err
		}

		pipeline := push.NewPipeline(client, campaigns)
		result, log := pipeline.Run(ctx, leads)

		if err := sink.WriteJSON(pushLogPath, log); err != nil {
			return err
		}

		rows := make([]store.PushLogRow, 0, len(log))
		for _, entry := range log {
			rows = append(rows, store.PushLogRow{
				RunID:      run.ID,
				Email:      entry.Email,
				CampaignID: entry.CampaignID,
				Success:    entry.Success,
				Error:      entry.Error,
				PushedAt:   entry.PushedAt,
			})
		}
		if err := runStore.AppendPushLog(ctx, rows); err != nil {
			zap.L().Warn("push: persist push log", zap.Error(err))
		}

		status := store.RunStatusComplete
		if result.Succeeded == 0 && result.Failed > 0 {
			status = store.RunStatusFailed
		}
		if err := runStore.FinishRun(ctx, run.ID, status,
			result.Total, result.Succeeded, result.Failed); err != nil {
			zap.L().Warn("push: finish run", zap.Error(err))
		}

		cmd.Printf("Total leads: %d\n", result.Total)
		cmd.Printf("Successful:  %d\n", result.Succeeded)
		cmd.Printf("Failed:      %d\n", result.Failed)
		cmd.Println("By campaign:")
		for campaign, count := range result.ByCampaign {
			cmd.Printf("  - %s: %d leads\n", campaign, count)
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().StringVar(&pushInput, "input", "", "enriched leads CSV")
	pushCmd.Flags().StringVar(&pushCampaign, "campaign", "", "route all leads to this campaign ID instead of by persona")
	pushCmd.Flags().StringVar(&pushLogPath, "log", "push_log.json", "push log JSON output path")
	pushCmd.Flags().BoolVar(&pushDemo, "demo", false, "use the curated demo leads and stub client")
	rootCmd.AddCommand(pushCmd)
}
