package browser

import (
	"sync/atomic"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Page adapts a playwright page to the page object driver.
type Page struct {
	page   playwright.Page
	expect playwright.PlaywrightAssertions
	logger *zap.Logger
	// acceptNext is consumed by the first dialog opened after AcceptNextDialog.
	acceptNext atomic.Bool
}

func newPage(page playwright.Page, logger *zap.Logger) *Page {
	p := &Page{page: page, expect: playwright.NewPlaywrightAssertions(), logger: logger}
	page.OnDialog(p.handleDialog)
	return p
}

func (p *Page) handleDialog(d playwright.Dialog) {
	if p.acceptNext.CompareAndSwap(true, false) {
		p.logger.Debug("accepting dialog", zap.String("type", d.Type()), zap.String("message", d.Message()))
		if err := d.Accept(); err != nil {
			p.logger.Warn("could not accept dialog", zap.Error(err))
		}
		return
	}
	p.logger.Debug("dismissing unexpected dialog", zap.String("type", d.Type()), zap.String("message", d.Message()))
	if err := d.Dismiss(); err != nil {
		p.logger.Warn("could not dismiss dialog", zap.Error(err))
	}
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (p *Page) Fill(selector, text string, timeout time.Duration) error {
	return p.page.Locator(selector).Fill(text, playwright.LocatorFillOptions{Timeout: ms(timeout)})
}

func (p *Page) Click(selector string, timeout time.Duration) error {
	return p.page.Locator(selector).Click(playwright.LocatorClickOptions{Timeout: ms(timeout)})
}

func (p *Page) ClickNth(selector string, index int, timeout time.Duration) error {
	return p.page.Locator(selector).Nth(index).Click(playwright.LocatorClickOptions{Timeout: ms(timeout)})
}

func (p *Page) Count(selector string) (int, error) {
	return p.page.Locator(selector).Count()
}

func (p *Page) InnerTexts(selector string) ([]string, error) {
	return p.page.Locator(selector).AllInnerTexts()
}

func (p *Page) WaitForText(selector, text string, timeout time.Duration) error {
	return p.page.Locator(selector).
		Filter(playwright.LocatorFilterOptions{HasText: text}).
		First().
		WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: ms(timeout),
		})
}

func (p *Page) WaitForValue(selector string, timeout time.Duration) error {
	return p.expect.Locator(p.page.Locator(selector)).Not().
		ToHaveValue("", playwright.LocatorAssertionsToHaveValueOptions{Timeout: ms(timeout)})
}

func (p *Page) URL() string { return p.page.URL() }

func (p *Page) WaitForURL(url string, timeout time.Duration) error {
	return p.page.WaitForURL(url, playwright.PageWaitForURLOptions{Timeout: ms(timeout)})
}

func (p *Page) Screenshot() ([]byte, error) {
	return p.page.Screenshot(playwright.PageScreenshotOptions{FullPage: playwright.Bool(true)})
}

// AcceptNextDialog arms the handler to accept exactly one dialog. Dialogs
// opened while the handler is not armed are dismissed.
func (p *Page) AcceptNextDialog() (disarm func()) {
	p.acceptNext.Store(true)
	return func() { p.acceptNext.Store(false) }
}
