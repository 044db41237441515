package pages

import (
	"contact-list-e2e/internal/locators"
	"contact-list-e2e/internal/models"
)

// EditContactPage is the form that updates an existing contact.
type EditContactPage struct {
	ContactForm
}

func newEditContactPage(b *BasePage) *EditContactPage {
	return &EditContactPage{ContactForm{b: b, loc: locators.EditContact}}
}

// IsLoaded confirms the location and waits for the form to be populated
// with the stored contact, so that later input replaces it.
func (p *EditContactPage) IsLoaded() error {
	if err := p.b.expectLocation(); err != nil {
		return err
	}
	sel := p.loc.Input(models.FieldFirstName)
	if err := p.b.driver.WaitForValue(sel, p.b.opts.NavigationTimeout); err != nil {
		return p.b.interactionFailed(&InteractionError{Action: "load", Selector: sel, Index: -1, Err: err})
	}
	return nil
}

// Submit replaces every field with the values of c and saves.
func (p *EditContactPage) Submit(c models.Contact) (*ContactDetailsPage, error) {
	next, err := p.b.perform(ActionSubmit, "Failed to Update Contact",
		func() error { return p.fillAll(c) },
		func() error { return p.b.Click(p.loc.SubmitButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactDetailsPage{b: next}, nil
}

// Cancel leaves the form without saving.
func (p *EditContactPage) Cancel() (*ContactDetailsPage, error) {
	next, err := p.b.perform(ActionCancel, "Failed to click cancel button",
		func() error { return p.b.Click(p.loc.CancelButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactDetailsPage{b: next}, nil
}
