package pages

import (
	"fmt"

	"contact-list-e2e/internal/locators"
	"contact-list-e2e/internal/models"
)

// HomePage is the login screen the application opens on.
type HomePage struct {
	b *BasePage
}

// NewHomePage binds the home screen to a freshly opened page.
func NewHomePage(d Driver, r Reporter, opts Options) *HomePage {
	return &HomePage{b: NewBasePage(d, r, opts, ScreenHome)}
}

func (p *HomePage) IsLoaded() error {
	return p.b.expectLocation()
}

func (p *HomePage) InputEmail(email string) error {
	p.b.report.Step("Input email: " + email)
	if err := p.b.Fill(locators.Home.EmailInput, email); err != nil {
		return &FieldInputError{Screen: ScreenHome, Field: models.FieldEmail, Err: err}
	}
	return nil
}

func (p *HomePage) InputPassword(password string) error {
	p.b.report.Step("Input password")
	if err := p.b.Fill(locators.Home.PasswordInput, password); err != nil {
		return &FieldInputError{Screen: ScreenHome, Field: models.FieldPassword, Err: err}
	}
	return nil
}

// Login submits the credentials and returns the contact list the
// application redirects to. Callers confirm the landing with IsLoaded.
func (p *HomePage) Login(email, password string) (*ContactListPage, error) {
	next, err := p.b.perform(ActionLogin, fmt.Sprintf("Login failed for email: %s", email),
		func() error { return p.InputEmail(email) },
		func() error { return p.InputPassword(password) },
		func() error { return p.b.Click(locators.Home.SubmitButton) },
	)
	if err != nil {
		return nil, err
	}
	return &ContactListPage{b: next}, nil
}

// SignUp opens the registration form.
func (p *HomePage) SignUp() (*RegistrationPage, error) {
	next, err := p.b.perform(ActionSignUp, "Failed to click sign up button",
		func() error { return p.b.Click(locators.Home.SignUpButton) },
	)
	if err != nil {
		return nil, err
	}
	return &RegistrationPage{b: next}, nil
}
