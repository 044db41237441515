package harness

import (
	"contact-list-e2e/internal/pages"
	"contact-list-e2e/internal/report"
)

// UI is the browser side of one test.
type UI struct {
	driver pages.Driver
	report *report.Recorder
	opts   pages.Options
	close  func() error
}

// Home returns the page object of the screen the session was opened on.
func (u *UI) Home() *pages.HomePage {
	return pages.NewHomePage(u.driver, u.report, u.opts)
}

func (u *UI) Report() *report.Recorder { return u.report }

func (u *UI) Driver() pages.Driver { return u.driver }

func (u *UI) base() *pages.BasePage {
	return pages.NewBasePage(u.driver, u.report, u.opts, pages.ScreenHome)
}
