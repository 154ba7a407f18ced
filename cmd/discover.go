package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/k12safe/leadgen-cli/internal/district"
	"github.com/k12safe/leadgen-cli/internal/fuse"
	"github.com/k12safe/leadgen-cli/internal/resolve"
	"github.com/k12safe/leadgen-cli/internal/sink"
	"github.com/k12safe/leadgen-cli/internal/source"
)

var (
	discoverSources   []string
	discoverDetails   bool
	discoverOutputDir string
	discoverInputCSV  string
	discoverNoProbe   bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Build the Texas district list with resolved domains",
	Long: `Scrapes district rosters from the configured sources, fuses them into
one deduplicated list, resolves each district's email domain, and writes
CSV and JSON outputs ready for enrichment.

Sources run in the order given; the first source to supply a field wins.

Examples:
  # Tribune and Wikipedia rosters, pattern-probe domains
  leadgen-cli discover

  # Add NCES cities, fetch per-district Tribune detail pages
  leadgen-cli discover --sources tribune,nces,wikipedia --details

  # Merge a hand-maintained roster on top
  leadgen-cli discover --input seeds.csv --sources csv,tribune`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if discoverOutputDir == "" {
			discoverOutputDir = cfg.Discover.OutputDir
		}

		opts := source.Options{
			UserAgent: cfg.Discover.UserAgent,
			RateLimit: cfg.Discover.RateLimit,
		}

		tribune := source.NewTribuneProvider(withBase(opts, cfg.Discover.TribuneBaseURL))

		// Gather per source; a failed source is logged and the rest
		// still contribute.
		var lists [][]district.District
		for _, name := range discoverSources {
			var (
				records []district.District
				err     error
			)
			switch name {
			case "tribune":
				records, err = tribune.Districts(ctx)
			case "wikipedia":
				records, err = source.NewWikipediaProvider(withBase(opts, cfg.Discover.WikipediaURL)).Districts(ctx)
			case "nces":
				records, err = source.NewNCESProvider(withBase(opts, cfg.Discover.NCESURL)).Districts(ctx)
			case "csv":
				if discoverInputCSV == "" {
					return eris.New("discover: --input required for the csv source")
				}
				records, err = source.LoadDistricts(discoverInputCSV)
			default:
				return eris.Errorf("discover: unknown source %q", name)
			}
			if err != nil {
				zap.L().Error("discover: source failed",
					zap.String("source", name),
					zap.Error(err))
				continue
			}
			lists = append(lists, records)
		}
		if len(lists) == 0 {
			return eris.New("discover: no source produced districts")
		}

		fused := fuse.Merge(lists...)
		fuse.LogNearDuplicates(fused)
		districts := fuse.Records(fused)
		zap.L().Info("discover: fused districts", zap.Int("count", len(districts)))

		if discoverDetails {
			for i := range districts {
				tribune.Detail(ctx, &districts[i])
			}
		}

		resolveDomains(ctx, districts)

		now := time.Now().UTC()
		for i := range districts {
			districts[i].State = "TX"
			districts[i].ScrapedAt = now
		}
		sort.SliceStable(districts, func(i, j int) bool {
			return districts[i].Enrollment > districts[j].Enrollment
		})

		if err := os.MkdirAll(discoverOutputDir, 0o755); err != nil {
			return eris.Wrapf(err, "discover: create output dir %s", discoverOutputDir)
		}
		if err := sink.WriteJSON(filepath.Join(discoverOutputDir, "texas_districts_all.json"), districts); err != nil {
			return err
		}
		if err := sink.WriteDistrictsCSV(filepath.Join(discoverOutputDir, "texas_districts_all.csv"), districts); err != nil {
			return err
		}
		if err := sink.WriteClayCSV(filepath.Join(discoverOutputDir, "texas_districts_for_clay.csv"), districts); err != nil {
			return err
		}

		printDiscoverSummary(cmd, districts)
		return nil
	},
}

// resolveDomains fills the domain for each district: the override table is
// authoritative and may overwrite a scraped website, a scraped website
// yields its host, and everything else is pattern probed.
func resolveDomains(ctx context.Context, districts []district.District) {
	r := resolve.New(resolve.Config{
		Overrides:    cfg.Resolver.Overrides,
		ProbeTimeout: time.Duration(cfg.Resolver.ProbeTimeoutSecs) * time.Second,
		ProbeRate:    cfg.Resolver.ProbeRate,
	})

	resolved := 0
	for i := range districts {
		d := &districts[i]

		if domain, ok := r.Override(d.Name); ok {
			d.Domain = domain
			d.Website = "https://www." + domain
			resolved++
			continue
		}
		if d.Website != "" {
			if domain := district.DomainFromWebsite(d.Website); domain != "" {
				d.Domain = domain
				resolved++
				continue
			}
		}
		if discoverNoProbe {
			continue
		}

		if domain := r.Resolve(ctx, d.Name); domain != "" {
			d.Domain = domain
			d.Website = "https://www." + domain
			resolved++
		}
	}

	zap.L().Info("discover: domains resolved",
		zap.Int("resolved", resolved),
		zap.Int("total", len(districts)))
}

func printDiscoverSummary(cmd *cobra.Command, districts []district.District) {
	total := len(districts)
	if total == 0 {
		cmd.Println("No districts found")
		return
	}

	withDomain, withEnrollment := 0, 0
	small, medium, large, xlarge := 0, 0, 0, 0
	for _, d := range districts {
		if d.Domain != "" {
			withDomain++
		}
		switch e := d.Enrollment; {
		case e <= 0:
		case e < 5000:
			withEnrollment++
			small++
		case e < 20000:
			withEnrollment++
			medium++
		case e < 50000:
			withEnrollment++
			large++
		default:
			withEnrollment++
			xlarge++
		}
	}

	cmd.Println(strings.Repeat("=", 60))
	cmd.Println("SUMMARY")
	cmd.Println(strings.Repeat("=", 60))
	cmd.Printf("Total districts:     %d\n", total)
	cmd.Printf("With domain:         %d (%d%%)\n", withDomain, 100*withDomain/total)
	cmd.Printf("With enrollment:     %d\n", withEnrollment)
	cmd.Println("BY SIZE (enrollment):")
	cmd.Printf("  Small (<5K):       %d\n", small)
	cmd.Printf("  Medium (5K-20K):   %d\n", medium)
	cmd.Printf("  Large (20K-50K):   %d\n", large)
	cmd.Printf("  XLarge (50K+):     %d\n", xlarge)

	cmd.Println("\nTOP 20 BY ENROLLMENT:")
	for i, d := range districts {
		if i == 20 {
			break
		}
		cmd.Printf("%-12d %-35s %-25s\n", d.Enrollment, truncate(d.Name, 33), truncate(d.Domain, 23))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func withBase(opts source.Options, baseURL string) source.Options {
	opts.BaseURL = baseURL
	return opts
}

func init() {
	discoverCmd.Flags().StringSliceVar(&discoverSources, "sources", []string{"tribune", "wikipedia"}, "sources to scrape, in priority order: tribune, wikipedia, nces, csv")
	discoverCmd.Flags().BoolVar(&discoverDetails, "details", false, "fetch per-district Tribune detail pages (enrollment, website, city)")
	discoverCmd.Flags().StringVar(&discoverOutputDir, "output-dir", "", "output directory (default from config)")
	discoverCmd.Flags().StringVar(&discoverInputCSV, "input", "", "district CSV for the csv source")
	discoverCmd.Flags().BoolVar(&discoverNoProbe, "no-probe", false, "skip HTTP pattern probing for unresolved districts")
	rootCmd.AddCommand(discoverCmd)
}
