package pages

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Driver is the part of a live browser page the page objects use. The page
// handle is borrowed: the harness that created it also closes it.
type Driver interface {
	// Fill clears the element matched by selector and types text into it.
	Fill(selector, text string, timeout time.Duration) error
	// Click clicks the single element matched by selector.
	Click(selector string, timeout time.Duration) error
	// ClickNth clicks the index-th match of selector in document order.
	ClickNth(selector string, index int, timeout time.Duration) error
	Count(selector string) (int, error)
	InnerTexts(selector string) ([]string, error)
	// WaitForText waits until some element matched by selector contains text.
	WaitForText(selector, text string, timeout time.Duration) error
	// WaitForValue waits until the input matched by selector holds a non-empty value.
	WaitForValue(selector string, timeout time.Duration) error
	URL() string
	WaitForURL(url string, timeout time.Duration) error
	Screenshot() ([]byte, error)
	// AcceptNextDialog accepts the next alert/confirm dialog the page opens.
	// The returned func disarms the handler if no dialog came.
	AcceptNextDialog() (disarm func())
}

// Reporter receives step annotations and diagnostic artifacts for the running test.
type Reporter interface {
	Step(title string)
	Attach(label string, png []byte) (string, error)
}

// Options configures page objects created from one browser session.
type Options struct {
	BaseURL           string
	ActionTimeout     time.Duration
	NavigationTimeout time.Duration
	Logger            *zap.Logger
}

// URL returns the absolute address of a screen.
func (o Options) URL(s Screen) string {
	return strings.TrimRight(o.BaseURL, "/") + s.Path()
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
