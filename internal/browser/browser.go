// Package browser drives Chromium through playwright and adapts a live page to
// the page object driver.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Options controls how Chromium is launched for each session.
type Options struct {
	Headless bool
	SlowMo   time.Duration
	// Install downloads the playwright driver and Chromium before starting.
	Install bool
}

func (o Options) launchOptions() playwright.BrowserTypeLaunchOptions {
	return playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(o.Headless),
		SlowMo:   playwright.Float(float64(o.SlowMo.Milliseconds())),
		Args:     []string{"--start-maximized"},
	}
}

func contextOptions() playwright.BrowserNewContextOptions {
	// The window size follows the maximized browser instead of a fixed viewport.
	return playwright.BrowserNewContextOptions{NoViewport: playwright.Bool(true)}
}

// Launcher owns the playwright driver process shared by every session of a run.
type Launcher struct {
	pw     *playwright.Playwright
	opts   Options
	logger *zap.Logger
}

// Start runs the playwright driver, installing it first when asked to.
func Start(opts Options, logger *zap.Logger) (*Launcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	logger.Debug("playwright started", zap.Bool("headless", opts.Headless), zap.Duration("slow_mo", opts.SlowMo))
	return &Launcher{pw: pw, opts: opts, logger: logger}, nil
}

// Stop shuts the driver down. Sessions must be closed first.
func (l *Launcher) Stop() error {
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("could not stop playwright: %w", err)
	}
	return nil
}

// Session is one browser with a single page, created for one test.
type Session struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    *Page
	logger  *zap.Logger
}

// NewSession launches a fresh maximized Chromium and opens a page in it.
func (l *Launcher) NewSession() (*Session, error) {
	b, err := l.pw.Chromium.Launch(l.opts.launchOptions())
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	s := &Session{browser: b, logger: l.logger}

	s.context, err = b.NewContext(contextOptions())
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	page, err := s.context.NewPage()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	s.page = newPage(page, l.logger)
	return s, nil
}

// Page returns the session's page.
func (s *Session) Page() *Page { return s.page }

// Goto navigates the page to url and waits for the load event.
func (s *Session) Goto(url string) error {
	if _, err := s.page.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

// Close releases the page, its context and the browser. It is safe to call on
// a partially created session.
func (s *Session) Close() error {
	var errs []error
	if s.page != nil {
		if err := s.page.page.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
			errs = append(errs, fmt.Errorf("close page: %w", err))
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
			errs = append(errs, fmt.Errorf("close context: %w", err))
		}
	}
	if err := s.browser.Close(); err != nil && !errors.Is(err, playwright.ErrTargetClosed) {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}
	return errors.Join(errs...)
}
