package pages

import (
	"errors"
	"fmt"

	"contact-list-e2e/internal/models"
)

var (
	// ErrIndexOutOfRange is wrapped by InteractionError when ClickByIndex
	// targets a match that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidTransition is returned when an action is not part of the screen graph.
	ErrInvalidTransition = errors.New("invalid screen transition")
)

// InteractionError reports an element that could not be located or acted on.
type InteractionError struct {
	Action   string
	Selector string
	// Index is the match position for indexed clicks, -1 otherwise.
	Index      int
	Diagnostic string
	Err        error
}

func (e *InteractionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s %s[%d]: %v", e.Action, e.Selector, e.Index, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Action, e.Selector, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }

// DiagnosticLabel returns the label of the screenshot captured for the failure.
func (e *InteractionError) DiagnosticLabel() string { return e.Diagnostic }

// NavigationError reports a browser location that does not match the screen.
type NavigationError struct {
	Screen     Screen
	Expected   string
	Actual     string
	Diagnostic string
	Err        error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("%s page did not load: expected location %s, got %s", e.Screen, e.Expected, e.Actual)
}

func (e *NavigationError) Unwrap() error { return e.Err }

func (e *NavigationError) DiagnosticLabel() string { return e.Diagnostic }

// FieldInputError names the form field whose input failed.
type FieldInputError struct {
	Screen Screen
	Field  models.Field
	Err    error
}

func (e *FieldInputError) Error() string {
	return fmt.Sprintf("%s: error inserting %s: %v", e.Screen, e.Field.Label(), e.Err)
}

func (e *FieldInputError) Unwrap() error { return e.Err }

type diagnosed interface {
	DiagnosticLabel() string
}

// diagnosticLabel returns the label of a screenshot already captured somewhere
// in err's chain, or "".
func diagnosticLabel(err error) string {
	var d diagnosed
	if errors.As(err, &d) {
		return d.DiagnosticLabel()
	}
	return ""
}
