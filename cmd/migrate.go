package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/k12safe/leadgen-cli/internal/sink"
	"github.com/k12safe/leadgen-cli/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create database schemas",
	Long:  "Creates the districts and leads tables in PostgreSQL and the run-tracking tables in the local SQLite database.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		runStore, err := store.NewSQLite(cfg.Store.RunDB)
		if err != nil {
			return err
		}
		defer runStore.Close()
		if err := runStore.Migrate(ctx); err != nil {
			return err
		}
		cmd.Printf("sqlite schema ready: %s\n", cfg.Store.RunDB)

		if cfg.Store.DatabaseURL == "" {
			cmd.Println("store.database_url not set, skipping postgres")
			return nil
		}

		pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return eris.Wrap(err, "migrate: connect postgres")
		}
		defer pool.Close()

		if err := sink.Migrate(ctx, pool); err != nil {
			return err
		}
		cmd.Println("postgres schema ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
