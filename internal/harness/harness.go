// Package harness provides the fixtures of the end-to-end suites: a fresh
// browser session per UI test, one API client per run, dataset
// parameterization and the ledger entry of every test.
package harness

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contact-list-e2e/internal/apiclient"
	"contact-list-e2e/internal/browser"
	"contact-list-e2e/internal/config"
	"contact-list-e2e/internal/fixture"
	"contact-list-e2e/internal/models"
	"contact-list-e2e/internal/pages"
	"contact-list-e2e/internal/report"
	"contact-list-e2e/internal/storage"
)

// FailureLabel names the screenshot attached to a failed UI test.
const FailureLabel = "Screenshot on Failure"

// Suite is the state shared by every test of one run.
type Suite struct {
	Config   *config.Config
	Logger   *zap.Logger
	Ledger   *storage.DB
	Run      *models.Run
	Fixtures *fixture.Loader

	api *apiclient.Client

	mu       sync.Mutex
	launcher *browser.Launcher
}

// Open prepares the results directory and the ledger, starts a run and
// creates the run's API client. The browser driver is started on first use.
func Open(cfg *config.Config, logger *zap.Logger) (*Suite, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.Results.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	if dir := filepath.Dir(cfg.Results.Ledger); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger dir: %w", err)
		}
	}
	ledger, err := storage.NewDB(cfg.Results.Ledger)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", cfg.Results.Ledger, err)
	}
	run, err := ledger.StartRun(cfg.BaseURL)
	if err != nil {
		ledger.Close()
		return nil, fmt.Errorf("start run: %w", err)
	}
	logger.Info("run started", zap.String("run_id", run.ID), zap.String("base_url", cfg.BaseURL))

	return &Suite{
		Config:   cfg,
		Logger:   logger,
		Ledger:   ledger,
		Run:      run,
		Fixtures: fixture.NewLoader(cfg.Fixtures.Dir),
		api: apiclient.New(cfg.BaseURL,
			apiclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeouts.Request}),
			apiclient.WithLogger(logger.Named("api")),
		),
	}, nil
}

// Close stops the browser driver and closes the ledger.
func (s *Suite) Close() error {
	var errs []error
	s.mu.Lock()
	if s.launcher != nil {
		errs = append(errs, s.launcher.Stop())
		s.launcher = nil
	}
	s.mu.Unlock()
	errs = append(errs, s.Ledger.Close())
	return errors.Join(errs...)
}

func (s *Suite) launch() (*browser.Launcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher != nil {
		return s.launcher, nil
	}
	l, err := browser.Start(browser.Options{
		Headless: s.Config.Browser.Headless,
		SlowMo:   s.Config.Browser.SlowMo,
		Install:  s.Config.Browser.Install,
	}, s.Logger.Named("browser"))
	if err != nil {
		return nil, err
	}
	s.launcher = l
	return l, nil
}

// PageOptions are the page object settings derived from the configuration.
func (s *Suite) PageOptions(logger *zap.Logger) pages.Options {
	return pages.Options{
		BaseURL:           s.Config.BaseURL,
		ActionTimeout:     s.Config.Timeouts.Action,
		NavigationTimeout: s.Config.Timeouts.Navigation,
		Logger:            logger,
	}
}

// Records loads a dataset and checks every record only uses fields.
func (s *Suite) Records(t testing.TB, name string, fields []models.Field) []fixture.Record {
	t.Helper()
	records, err := s.Fixtures.Load(name)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	for _, r := range records {
		if err := r.Validate(fields); err != nil {
			t.Fatalf("dataset %s: %v", name, err)
		}
	}
	return records
}

// API returns the run's client and records the test under the api marker.
// API tests never capture screenshots.
func (s *Suite) API(t *testing.T) *apiclient.Client {
	t.Helper()
	start := time.Now()
	t.Cleanup(func() { s.finish(t, models.MarkerAPI, start, nil) })
	return s.api
}

// UI opens a fresh browser on the application root for the test. The session
// is closed when the test ends, after a screenshot is attached if it failed.
func (s *Suite) UI(t *testing.T) *UI {
	t.Helper()
	start := time.Now()
	logger := s.Logger.With(zap.String("test", t.Name()))

	var ui *UI
	t.Cleanup(func() { s.finish(t, models.MarkerUI, start, ui) })

	l, err := s.launch()
	if err != nil {
		t.Fatalf("start browser: %v", err)
	}
	session, err := l.NewSession()
	if err != nil {
		t.Fatalf("open browser session: %v", err)
	}
	ui = &UI{
		driver: session.Page(),
		report: report.New(s.Config.Results.Dir, s.Run.ID, t.Name(), s.Ledger, logger),
		opts:   s.PageOptions(logger),
		close:  session.Close,
	}

	if err := session.Goto(s.Config.BaseURL); err != nil {
		t.Fatalf("open application: %v", err)
	}
	return ui
}

// status is the part of *testing.T the ledger needs.
type status interface {
	Name() string
	Failed() bool
	Skipped() bool
}

func (s *Suite) finish(t status, marker models.Marker, start time.Time, ui *UI) {
	logger := s.Logger.With(zap.String("test", t.Name()))

	if ui != nil && t.Failed() {
		if err := ui.base().CaptureDiagnostic(FailureLabel); err != nil {
			logger.Error("failure screenshot lost", zap.Error(err))
		}
	}

	outcome := models.OutcomePassed
	switch {
	case t.Skipped():
		outcome = models.OutcomeSkipped
	case t.Failed():
		outcome = models.OutcomeFailed
	}
	result := &models.Result{
		RunID:    s.Run.ID,
		Test:     t.Name(),
		Marker:   marker,
		Outcome:  outcome,
		Duration: time.Since(start),
	}
	if err := s.Ledger.RecordResult(result); err != nil {
		logger.Error("could not record result", zap.Error(err))
	}
	logger.Info("test finished",
		zap.String("marker", string(marker)),
		zap.String("outcome", string(outcome)),
		zap.Duration("duration", result.Duration),
	)

	if ui != nil {
		if err := ui.close(); err != nil {
			logger.Warn("could not close browser session", zap.Error(err))
		}
	}
}

// Each runs fn as one subtest per record.
func Each(t *testing.T, records []fixture.Record, fn func(t *testing.T, r fixture.Record)) {
	t.Helper()
	if len(records) == 0 {
		t.Skip("dataset is empty")
	}
	for _, r := range records {
		t.Run(r.Name(), func(t *testing.T) { fn(t, r) })
	}
}

// UniqueEmail returns an address no earlier run has registered.
func UniqueEmail(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s@fake.com", prefix, id[:12])
}
