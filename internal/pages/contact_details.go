package pages

import (
	"fmt"

	"contact-list-e2e/internal/locators"
)

// ContactDetailsPage shows one contact read-only.
type ContactDetailsPage struct {
	b *BasePage
}

func (p *ContactDetailsPage) IsLoaded() error {
	return p.b.expectLocation()
}

// Edit opens the edit form of the contact.
func (p *ContactDetailsPage) Edit() (*EditContactPage, error) {
	next, err := p.b.perform(ActionEdit, "Error clicking 'Edit Contact' button",
		func() error { return p.b.Click(locators.ContactDetails.EditButton) },
	)
	if err != nil {
		return nil, err
	}
	return newEditContactPage(next), nil
}

// Delete removes the contact, accepting the confirmation dialog, and returns
// to the list.
func (p *ContactDetailsPage) Delete() (*ContactListPage, error) {
	next, err := p.b.perform(ActionDelete, "Failed to delete contact",
		func() error {
			// The confirm dialog is modal: the handler has to be in place
			// before the click that opens it.
			disarm := p.b.driver.AcceptNextDialog()
			if err := p.b.Click(locators.ContactDetails.DeleteButton); err != nil {
				disarm()
				return err
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &ContactListPage{b: next}, nil
}

// ReturnToList goes back to the contact table.
func (p *ContactDetailsPage) ReturnToList() (*ContactListPage, error) {
	next, err := p.b.perform(ActionReturn, "Failed to return to contact list",
		func() error { return p.b.Click(locators.ContactDetails.ReturnButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactListPage{b: next}, nil
}

// WaitForDetails waits until some detail value contains text.
func (p *ContactDetailsPage) WaitForDetails(text string) error {
	return p.b.waitForText(locators.ContactDetails.DetailsFieldValues, text)
}

// Details returns the displayed field values in page order.
func (p *ContactDetailsPage) Details() ([]string, error) {
	texts, err := p.b.driver.InnerTexts(locators.ContactDetails.DetailsFieldValues)
	if err != nil {
		return nil, fmt.Errorf("read contact details: %w", err)
	}
	return texts, nil
}
