package pages

import (
	"fmt"
	"strings"

	"contact-list-e2e/internal/locators"
)

// ContactListPage is the table of the logged-in user's contacts.
type ContactListPage struct {
	b *BasePage
}

// IsLoaded confirms the browser is on the contact list, i.e. the user is logged in.
func (p *ContactListPage) IsLoaded() error {
	return p.b.expectLocation()
}

// AddContact opens the add contact form.
func (p *ContactListPage) AddContact() (*AddContactPage, error) {
	next, err := p.b.perform(ActionAddContact, "Error clicking 'Add New Contact' button",
		func() error { return p.b.Click(locators.ContactList.AddContactButton) },
	)
	if err != nil {
		return nil, err
	}
	return newAddContactPage(next), nil
}

// SelectContact opens the details of the index-th row of the table.
func (p *ContactListPage) SelectContact(index int) (*ContactDetailsPage, error) {
	next, err := p.b.perform(ActionSelect, fmt.Sprintf("Failed to select contact at index %d", index),
		func() error { return p.b.ClickByIndex(locators.ContactList.ContactRows, index) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactDetailsPage{b: next}, nil
}

// Logout ends the session and returns to the login screen.
func (p *ContactListPage) Logout() (*HomePage, error) {
	next, err := p.b.perform(ActionLogout, "Failed to logout",
		func() error { return p.b.Click(locators.ContactList.LogoutButton) },
	)
	if err != nil {
		return nil, err
	}
	return &HomePage{b: next}, nil
}

// Rows returns the text of every table row with tabs turned into spaces.
func (p *ContactListPage) Rows() ([]string, error) {
	texts, err := p.b.driver.InnerTexts(locators.ContactList.ContactRows)
	if err != nil {
		return nil, fmt.Errorf("read contact rows: %w", err)
	}
	rows := make([]string, len(texts))
	for i, t := range texts {
		rows[i] = strings.ReplaceAll(t, "\t", " ")
	}
	return rows, nil
}

// WaitForContact waits until a row mentioning email is rendered.
func (p *ContactListPage) WaitForContact(email string) error {
	return p.b.waitForText(locators.ContactList.ContactRows, email)
}

// HasContact reports whether some row contains email.
func (p *ContactListPage) HasContact(email string) (bool, error) {
	rows, err := p.Rows()
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if strings.Contains(row, email) {
			return true, nil
		}
	}
	return false, nil
}
