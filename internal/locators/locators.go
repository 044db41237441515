// Package locators holds the CSS selectors of every screen of the contact
// list application, grouped by screen.
package locators

import (
	"fmt"

	"contact-list-e2e/internal/models"
)

// Group is the set of selectors belonging to one screen, keyed by element name.
type Group struct {
	Screen   string
	Elements map[string]string
}

// Validate reports an error when two elements of the group share a selector.
func (g Group) Validate() error {
	seen := make(map[string]string, len(g.Elements))
	for name, sel := range g.Elements {
		if sel == "" {
			return fmt.Errorf("%s: element %q has an empty selector", g.Screen, name)
		}
		if other, ok := seen[sel]; ok {
			return fmt.Errorf("%s: elements %q and %q share selector %q", g.Screen, other, name, sel)
		}
		seen[sel] = name
	}
	return nil
}

// ByID returns an attribute selector matching the element with the given id.
func ByID(id string) string {
	return fmt.Sprintf("[id='%s']", id)
}

// ForField returns the input selector of a form field.
func ForField(f models.Field) string {
	return ByID(f.Key())
}

// HomeLocators are the login form elements.
type HomeLocators struct {
	EmailInput    string
	PasswordInput string
	SubmitButton  string
	SignUpButton  string
}

// RegistrationLocators are the sign-up form elements.
type RegistrationLocators struct {
	FirstNameInput string
	LastNameInput  string
	EmailInput     string
	PasswordInput  string
	SubmitButton   string
	CancelButton   string
}

// ContactListLocators are the contact table elements.
type ContactListLocators struct {
	AddContactButton string
	ContactRows      string
	LogoutButton     string
}

// ContactFormLocators are shared by the add and edit contact forms.
type ContactFormLocators struct {
	Inputs       map[models.Field]string
	SubmitButton string
	CancelButton string
}

// Input returns the selector of a form field.
func (l ContactFormLocators) Input(f models.Field) string {
	return l.Inputs[f]
}

// ContactDetailsLocators are the details screen elements.
type ContactDetailsLocators struct {
	EditButton         string
	DeleteButton       string
	ReturnButton       string
	DetailsFieldValues string
}

var (
	Home = HomeLocators{
		EmailInput:    ForField(models.FieldEmail),
		PasswordInput: ForField(models.FieldPassword),
		SubmitButton:  ByID("submit"),
		SignUpButton:  ByID("signup"),
	}

	Registration = RegistrationLocators{
		FirstNameInput: ForField(models.FieldFirstName),
		LastNameInput:  ForField(models.FieldLastName),
		EmailInput:     ForField(models.FieldEmail),
		PasswordInput:  ForField(models.FieldPassword),
		SubmitButton:   ByID("submit"),
		CancelButton:   ByID("cancel"),
	}

	ContactList = ContactListLocators{
		AddContactButton: ByID("add-contact"),
		ContactRows:      "[id='myTable'] [class=contactTableBodyRow]",
		LogoutButton:     ByID("logout"),
	}

	AddContact = contactForm()

	EditContact = contactForm()

	ContactDetails = ContactDetailsLocators{
		EditButton:         ByID("edit-contact"),
		DeleteButton:       ByID("delete"),
		ReturnButton:       ByID("return"),
		DetailsFieldValues: "[id='contactDetails'] p span",
	}
)

func contactForm() ContactFormLocators {
	inputs := make(map[models.Field]string, len(models.ContactFields))
	for _, f := range models.ContactFields {
		inputs[f] = ForField(f)
	}
	return ContactFormLocators{
		Inputs:       inputs,
		SubmitButton: ByID("submit"),
		CancelButton: ByID("cancel"),
	}
}

// Groups returns every screen's selectors for validation and lookup.
func Groups() []Group {
	formGroup := func(screen string, l ContactFormLocators) Group {
		el := map[string]string{"submit": l.SubmitButton, "cancel": l.CancelButton}
		for f, sel := range l.Inputs {
			el[f.Key()] = sel
		}
		return Group{Screen: screen, Elements: el}
	}
	return []Group{
		{Screen: "home", Elements: map[string]string{
			"email":    Home.EmailInput,
			"password": Home.PasswordInput,
			"submit":   Home.SubmitButton,
			"signup":   Home.SignUpButton,
		}},
		{Screen: "registration", Elements: map[string]string{
			"firstName": Registration.FirstNameInput,
			"lastName":  Registration.LastNameInput,
			"email":     Registration.EmailInput,
			"password":  Registration.PasswordInput,
			"submit":    Registration.SubmitButton,
			"cancel":    Registration.CancelButton,
		}},
		{Screen: "contact list", Elements: map[string]string{
			"addContact": ContactList.AddContactButton,
			"rows":       ContactList.ContactRows,
			"logout":     ContactList.LogoutButton,
		}},
		formGroup("add contact", AddContact),
		formGroup("edit contact", EditContact),
		{Screen: "contact details", Elements: map[string]string{
			"edit":    ContactDetails.EditButton,
			"delete":  ContactDetails.DeleteButton,
			"return":  ContactDetails.ReturnButton,
			"details": ContactDetails.DetailsFieldValues,
		}},
	}
}
