package pages

import (
	"contact-list-e2e/internal/locators"
	"contact-list-e2e/internal/models"
)

// RegistrationPage is the sign-up form.
type RegistrationPage struct {
	b *BasePage
}

func (p *RegistrationPage) IsLoaded() error {
	return p.b.expectLocation()
}

func (p *RegistrationPage) InputFirstName(v string) error {
	return p.input(models.FieldFirstName, locators.Registration.FirstNameInput, v)
}

func (p *RegistrationPage) InputLastName(v string) error {
	return p.input(models.FieldLastName, locators.Registration.LastNameInput, v)
}

func (p *RegistrationPage) InputEmail(v string) error {
	return p.input(models.FieldEmail, locators.Registration.EmailInput, v)
}

func (p *RegistrationPage) InputPassword(v string) error {
	p.b.report.Step("Enter password")
	if err := p.b.Fill(locators.Registration.PasswordInput, v); err != nil {
		return &FieldInputError{Screen: ScreenRegistration, Field: models.FieldPassword, Err: err}
	}
	return nil
}

func (p *RegistrationPage) input(f models.Field, selector, v string) error {
	p.b.report.Step("Enter " + f.Label() + ": " + v)
	if err := p.b.Fill(selector, v); err != nil {
		return &FieldInputError{Screen: ScreenRegistration, Field: f, Err: err}
	}
	return nil
}

// Register fills the form, submits it and returns the contact list of the
// new account.
func (p *RegistrationPage) Register(reg models.Registration) (*ContactListPage, error) {
	next, err := p.b.perform(ActionRegister, "Failed to register user",
		func() error { return p.InputFirstName(reg.FirstName) },
		func() error { return p.InputLastName(reg.LastName) },
		func() error { return p.InputEmail(reg.Email) },
		func() error { return p.InputPassword(reg.Password) },
		func() error { return p.b.Click(locators.Registration.SubmitButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactListPage{b: next}, nil
}

// Cancel discards the form and returns to the login screen.
func (p *RegistrationPage) Cancel() (*HomePage, error) {
	next, err := p.b.perform(ActionCancel, "Failed to click cancel button",
		func() error { return p.b.Click(locators.Registration.CancelButton) },
	)
	if err != nil {
		return nil, err
	}
	return &HomePage{b: next}, nil
}
