package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pysugar/oura-scraper/internal/auth/token"
	"github.com/pysugar/oura-scraper/internal/scraper"
	"github.com/pysugar/oura-scraper/internal/upstream"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var scrapeFlags struct {
	days   int
	output string
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--days N] [--output text|json|yaml]",
	Short: "Fetch every Oura endpoint for the last N days and upsert it into the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("days") {
			s.ScrapeDays = scrapeFlags.days
		}
		if err := s.Validate(); err != nil {
			return err
		}

		a, err := newApp(s, true)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if _, err := a.manager.ValidToken(ctx); err != nil {
			if token.NeedsReauthorization(err) {
				return fmt.Errorf("%w; %s", err, reauthHint)
			}
			return err
		}

		client := upstream.NewClient(a.manager)
		report, err := scraper.New(a.db, client).Run(ctx, s.ScrapeDays)
		if err != nil {
			return err
		}
		if err := writeReport(cmd.OutOrStdout(), report, scrapeFlags.output); err != nil {
			return err
		}

		if report.Unauthorized() {
			fmt.Fprintln(cmd.ErrOrStderr(), "The API rejected the access token; "+reauthHint+".")
		}
		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d of %d endpoints failed: %v", len(failed), len(report.Endpoints), failed)
		}
		return nil
	},
}

func writeReport(w io.Writer, r *scraper.Report, format string) error {
	switch format {
	case "", "text":
		return r.WriteText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeFlags.days, "days", scraper.DefaultDays, "number of days to look back")
	scrapeCmd.Flags().StringVarP(&scrapeFlags.output, "output", "o", "text", "report format: text, json or yaml")
	rootCmd.AddCommand(scrapeCmd)
}
