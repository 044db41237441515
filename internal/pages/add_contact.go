package pages

import (
	"contact-list-e2e/internal/locators"
	"contact-list-e2e/internal/models"
)

// AddContactPage is the new contact form.
type AddContactPage struct {
	ContactForm
}

func newAddContactPage(b *BasePage) *AddContactPage {
	return &AddContactPage{ContactForm{b: b, loc: locators.AddContact}}
}

func (p *AddContactPage) IsLoaded() error {
	return p.b.expectLocation()
}

// Submit fills every field of c, saves the contact and returns the list.
func (p *AddContactPage) Submit(c models.Contact) (*ContactListPage, error) {
	next, err := p.b.perform(ActionSubmit, "Failed Adding New Contact",
		func() error { return p.fillAll(c) },
		func() error { return p.b.Click(p.loc.SubmitButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactListPage{b: next}, nil
}

// Cancel leaves the form without saving.
func (p *AddContactPage) Cancel() (*ContactListPage, error) {
	next, err := p.b.perform(ActionCancel, "Failed to click cancel button",
		func() error { return p.b.Click(p.loc.CancelButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactListPage{b: next}, nil
}
