package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	json "github.com/json-iterator/go"

	"contact-list-e2e/internal/config"
	"contact-list-e2e/internal/models"
	"contact-list-e2e/internal/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// summary is the machine-readable form of one run.
type summary struct {
	Run         *models.Run            `json:"run"`
	Counts      map[models.Outcome]int `json:"counts"`
	Results     []models.Result        `json:"results"`
	Attachments []models.Attachment    `json:"attachments"`
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(stderr)

	ledgerPath := fs.String("ledger", "", "Path to the results ledger (defaults to CONTACT_LIST_RESULTS_LEDGER)")
	runID := fs.String("run", "", "Run ID to show (defaults to the latest run)")
	failedOnly := fs.Bool("failed", false, "Only show failed tests")
	asJSON := fs.Bool("json", false, "Print the run as JSON")
	envFile := fs.String("env", ".env", "Path to an optional .env file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *ledgerPath == "" {
		cfg, err := config.Load(*envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		*ledgerPath = cfg.Results.Ledger
	}
	if _, err := os.Stat(*ledgerPath); err != nil {
		return fmt.Errorf("ledger not found: %w", err)
	}

	db, err := storage.NewDB(*ledgerPath)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer db.Close()

	var r *models.Run
	if *runID == "" {
		r, err = db.LatestRun()
	} else {
		r, err = db.GetRun(*runID)
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("run %s not found", *runID)
		}
	}
	if err != nil {
		return err
	}

	results, err := db.ListResults(r.ID)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}
	counts, err := db.CountOutcomes(r.ID)
	if err != nil {
		return fmt.Errorf("failed to count outcomes: %w", err)
	}
	attachments, err := db.ListAttachments(r.ID, "")
	if err != nil {
		return fmt.Errorf("failed to list attachments: %w", err)
	}

	if *failedOnly {
		kept := results[:0]
		for _, res := range results {
			if res.Outcome == models.OutcomeFailed {
				kept = append(kept, res)
			}
		}
		results = kept
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary{Run: r, Counts: counts, Results: results, Attachments: attachments})
	}

	byTest := map[string][]models.Attachment{}
	for _, a := range attachments {
		byTest[a.Test] = append(byTest[a.Test], a)
	}

	fmt.Fprintf(stdout, "Run %s against %s started %s\n\n", r.ID, r.BaseURL, r.StartedAt.Format(time.RFC3339))

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OUTCOME\tMARKER\tDURATION\tTEST")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.Outcome, res.Marker, res.Duration.Round(time.Millisecond), res.Test)
		for _, a := range byTest[res.Test] {
			fmt.Fprintf(w, "\t\t\t  %s: %s\n", a.Label, a.Path)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%d passed, %d failed, %d skipped\n",
		counts[models.OutcomePassed], counts[models.OutcomeFailed], counts[models.OutcomeSkipped])
	return nil
}
