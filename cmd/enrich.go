package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
	"github.com/k12safe/leadgen-cli/internal/enrich"
	"github.com/k12safe/leadgen-cli/internal/sink"
	"github.com/k12safe/leadgen-cli/internal/source"
	"github.com/k12safe/leadgen-cli/internal/store"
	"github.com/k12safe/leadgen-cli/pkg/clay"
)

var (
	enrichInput    string
	enrichDemo     bool
	enrichOutput   string
	enrichJSON     string
	enrichXLSX     string
	enrichDatabase bool
	enrichLimit    int
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Find and enrich decision-maker contacts for each district",
	Long: `Reads a district CSV, searches Clay for people matching the target
titles at each district's domain, enriches each hit with email, phone,
and LinkedIn, and classifies every contact into an outreach persona.

Districts without a domain skip the search and pass through with no
contacts. A failed search or enrichment is logged and the run continues.

Examples:
  # Demo mode, curated dataset, no API key needed
  leadgen-cli enrich --demo --output enriched_leads.csv

  # Live mode over the discovery output
  leadgen-cli enrich --input texas_districts_for_clay.csv --output enriched_leads.csv

  # Also persist to PostgreSQL and write a spreadsheet
  leadgen-cli enrich --input districts.csv --database --xlsx enriched_leads.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var (
			districts []district.District
			client    clay.Client
			err       error
		)
		if enrichDemo {
			districts = enrich.DemoDistricts()
			client = &enrich.StubClayClient{}
		} else {
			if cfg.Clay.Key == "" {
				return eris.New("enrich: clay API key required (set LEADGEN_CLAY_KEY or use --demo)")
			}
			if enrichInput == "" {
				return eris.New("enrich: --input required in live mode")
			}
			districts, err = source.LoadDistricts(enrichInput)
			if err != nil {
				return err
			}
			client = clay.NewClient(cfg.Clay.Key,
				clay.WithBaseURL(cfg.Clay.BaseURL),
				clay.WithRateLimit(cfg.Clay.RateLimit),
			)
		}

		if enrichLimit > 0 && enrichLimit < len(districts) {
			districts = districts[:enrichLimit]
		}

		runStore, err := store.NewSQLite(cfg.Store.RunDB)
		if err != nil {
			return err
		}
		defer runStore.Close()
		if err := runStore.Migrate(ctx); err != nil {
			return err
		}
		run, err := runStore.CreateRun(ctx, "enrich")
		if err != nil {
			return err
		}

		engine := enrich.NewEngine(client,
			enrich.WithTargetTitles(cfg.Clay.TargetTitles),
			enrich.WithSearchLimit(cfg.Clay.SearchLimit),
		)
		enriched, summary, err := engine.Run(ctx, districts)
		if err != nil {
			_ = runStore.FinishRun(ctx, run.ID, store.RunStatusFailed, len(districts), 0, 0)
			return err
		}

		if err := sink.WriteLeadsCSV(enrichOutput, enriched); err != nil {
			return err
		}
		if enrichJSON != "" {
			if err := sink.WriteJSON(enrichJSON, enriched); err != nil {
				return err
			}
		}
		if enrichXLSX != "" {
			if err := sink.WriteLeadsXLSX(enrichXLSX, enriched); err != nil {
				return err
			}
		}
		if enrichDatabase {
			if err := saveToPostgres(ctx, enriched); err != nil {
				return err
			}
		}

		total, succeeded, failed := enrichRunCounts(len(districts), summary)
		if err := runStore.FinishRun(ctx, run.ID, store.RunStatusComplete,
			total, succeeded, failed); err != nil {
			zap.L().Warn("enrich: finish run", zap.Error(err))
		}

		cmd.Printf("Districts processed: %d (skipped %d)\n", summary.Districts, summary.Skipped)
		cmd.Printf("Total contacts found: %d\n", summary.Contacts)
		cmd.Printf("  - Superintendents:   %d\n", summary.Superintendents)
		cmd.Printf("  - Safety Directors:  %d\n", summary.SafetyDirectors)
		cmd.Printf("  - COOs:              %d\n", summary.COOs)
		return nil
	},
}

// enrichRunCounts maps an enrichment summary onto the run store's counters.
// Districts without a domain are an informational skip, not a failure; they
// count toward the total only.
func enrichRunCounts(total int, s enrich.Summary) (int, int, int) {
	return total, s.Districts, 0
}

func saveToPostgres(ctx context.Context, districts []district.District) error {
	if cfg.Store.DatabaseURL == "" {
		return eris.New("enrich: store.database_url required for --database")
	}
	pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return eris.Wrap(err, "enrich: connect postgres")
	}
	defer pool.Close()

	if err := sink.Migrate(ctx, pool); err != nil {
		return err
	}
	return sink.SaveDistricts(ctx, pool, districts)
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "district CSV from the discover stage")
	enrichCmd.Flags().BoolVar(&enrichDemo, "demo", false, "use the curated demo dataset and stub client")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "enriched_leads.csv", "leads CSV output path")
	enrichCmd.Flags().StringVar(&enrichJSON, "json", "", "also write nested JSON to this path")
	enrichCmd.Flags().StringVar(&enrichXLSX, "xlsx", "", "also write a spreadsheet to this path")
	enrichCmd.Flags().BoolVar(&enrichDatabase, "database", false, "also upsert districts and leads into PostgreSQL")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max districts to enrich (0 = all)")
	rootCmd.AddCommand(enrichCmd)
}
