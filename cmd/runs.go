package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/k12safe/leadgen-cli/internal/store"
)

var runsShowLog bool

var runsCmd = &cobra.Command{
	Use:   "runs <run-id>",
	Short: "Show a tracked pipeline run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runStore, err := store.NewSQLite(cfg.Store.RunDB)
		if err != nil {
			return err
		}
		defer runStore.Close()
		if err := runStore.Migrate(ctx); err != nil {
			return err
		}

		run, err := runStore.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs: load run")
		}

		cmd.Printf("Run:       %s\n", run.ID)
		cmd.Printf("Stage:     %s\n", run.Stage)
		cmd.Printf("Status:    %s\n", run.Status)
		cmd.Printf("Total:     %d\n", run.Total)
		cmd.Printf("Succeeded: %d\n", run.Succeeded)
		cmd.Printf("Failed:    %d\n", run.Failed)
		cmd.Printf("Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
		if run.FinishedAt != nil {
			cmd.Printf("Finished:  %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
		}

		if !runsShowLog {
			return nil
		}

		history, err := runStore.PushHistory(ctx, run.ID)
		if err != nil {
			return err
		}
		for _, row := range history {
			mark := "ok"
			if !row.Success {
				mark = "FAIL"
			}
			cmd.Printf("  [%s] %s -> %s %s\n", mark, row.Email, row.CampaignID, row.Error)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().BoolVar(&runsShowLog, "log", false, "also print the push log for the run")
	rootCmd.AddCommand(runsCmd)
}
