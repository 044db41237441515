package pages

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// BasePage holds the primitives every page object is built from. Failed
// interactions capture a diagnostic screenshot before the error is returned.
type BasePage struct {
	driver Driver
	report Reporter
	opts   Options
	screen Screen
}

// NewBasePage binds a page handle and a report to a screen.
func NewBasePage(d Driver, r Reporter, opts Options, s Screen) *BasePage {
	return &BasePage{driver: d, report: r, opts: opts, screen: s}
}

// Screen returns the screen this page is bound to.
func (b *BasePage) Screen() Screen { return b.screen }

// Fill types value, coerced to text, into the element matched by selector.
func (b *BasePage) Fill(selector string, value any) error {
	if err := b.driver.Fill(selector, toText(value), b.opts.ActionTimeout); err != nil {
		return b.interactionFailed(&InteractionError{Action: "fill", Selector: selector, Index: -1, Err: err})
	}
	return nil
}

// Click clicks the single element matched by selector.
func (b *BasePage) Click(selector string) error {
	if err := b.driver.Click(selector, b.opts.ActionTimeout); err != nil {
		return b.interactionFailed(&InteractionError{Action: "click", Selector: selector, Index: -1, Err: err})
	}
	return nil
}

// ClickByIndex clicks the index-th element matched by selector.
func (b *BasePage) ClickByIndex(selector string, index int) error {
	if index < 0 {
		return b.interactionFailed(&InteractionError{
			Action: "click", Selector: selector, Index: index,
			Err: fmt.Errorf("%w: %d", ErrIndexOutOfRange, index),
		})
	}
	err := b.driver.ClickNth(selector, index, b.opts.ActionTimeout)
	if err == nil {
		return nil
	}
	if n, cerr := b.driver.Count(selector); cerr == nil && index >= n {
		err = fmt.Errorf("%w: %d of %d matches", ErrIndexOutOfRange, index, n)
	}
	return b.interactionFailed(&InteractionError{Action: "click", Selector: selector, Index: index, Err: err})
}

// CaptureDiagnostic attaches a full-page screenshot to the report under label.
// A screenshot that cannot be taken is logged and ignored; only a failure to
// store the artifact is returned.
func (b *BasePage) CaptureDiagnostic(label string) error {
	png, err := b.driver.Screenshot()
	if err != nil {
		b.opts.logger().Warn("diagnostic screenshot failed", zap.String("label", label), zap.Error(err))
		return nil
	}
	path, err := b.report.Attach(label, png)
	if err != nil {
		return fmt.Errorf("attach diagnostic %q: %w", label, err)
	}
	b.opts.logger().Info("diagnostic captured", zap.String("label", label), zap.String("path", path))
	return nil
}

// attempt runs action and, on failure, captures a diagnostic under label
// unless an inner call already did, then wraps the error with label.
func (b *BasePage) attempt(label string, action func() error) error {
	err := action()
	if err == nil {
		return nil
	}
	if diagnosticLabel(err) == "" {
		b.capture(label)
	}
	return fmt.Errorf("%s: %w", label, err)
}

// perform runs the steps of a navigating action and returns the base of the
// destination screen.
func (b *BasePage) perform(a Action, label string, steps ...func() error) (*BasePage, error) {
	if !CanTransition(b.screen, a) {
		return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, a, b.screen)
	}
	to, _ := Next(b.screen, a)
	b.report.Step(fmt.Sprintf("%s: %s", b.screen, a))
	err := b.attempt(label, func() error {
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewBasePage(b.driver, b.report, b.opts, to), nil
}

// expectLocation waits for the browser to reach the bound screen.
func (b *BasePage) expectLocation() error {
	expected := b.opts.URL(b.screen)
	if err := b.driver.WaitForURL(expected, b.opts.NavigationTimeout); err != nil {
		e := &NavigationError{
			Screen:     b.screen,
			Expected:   expected,
			Actual:     b.driver.URL(),
			Diagnostic: "Page Load Failure",
			Err:        err,
		}
		b.capture(e.Diagnostic)
		return e
	}
	return nil
}

func (b *BasePage) waitForText(selector, text string) error {
	if err := b.driver.WaitForText(selector, text, b.opts.NavigationTimeout); err != nil {
		return b.interactionFailed(&InteractionError{Action: fmt.Sprintf("find %q in", text), Selector: selector, Index: -1, Err: err})
	}
	return nil
}

func (b *BasePage) interactionFailed(e *InteractionError) error {
	e.Diagnostic = fmt.Sprintf("Failed to %s %s", e.Action, e.Selector)
	b.capture(e.Diagnostic)
	return e
}

func (b *BasePage) capture(label string) {
	if err := b.CaptureDiagnostic(label); err != nil {
		b.opts.logger().Error("diagnostic lost", zap.String("label", label), zap.Error(err))
	}
}

func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// IsNavigation reports whether err is, or wraps, a NavigationError.
func IsNavigation(err error) bool {
	var ne *NavigationError
	return errors.As(err, &ne)
}
