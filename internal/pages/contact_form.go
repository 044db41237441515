package pages

import (
	"contact-list-e2e/internal/locators"
	"contact-list-e2e/internal/models"
)

// ContactForm holds the field setters shared by the add and edit screens.
type ContactForm struct {
	b   *BasePage
	loc locators.ContactFormLocators
}

func (f ContactForm) InputFirstName(v string) error { return f.input(models.FieldFirstName, v) }

func (f ContactForm) InputLastName(v string) error { return f.input(models.FieldLastName, v) }

func (f ContactForm) InputBirthdate(v string) error { return f.input(models.FieldBirthdate, v) }

func (f ContactForm) InputEmail(v string) error { return f.input(models.FieldEmail, v) }

func (f ContactForm) InputPhone(v string) error { return f.input(models.FieldPhone, v) }

func (f ContactForm) InputStreet1(v string) error { return f.input(models.FieldStreet1, v) }

func (f ContactForm) InputStreet2(v string) error { return f.input(models.FieldStreet2, v) }

func (f ContactForm) InputCity(v string) error { return f.input(models.FieldCity, v) }

func (f ContactForm) InputStateProvince(v string) error {
	return f.input(models.FieldStateProvince, v)
}

func (f ContactForm) InputPostalCode(v string) error { return f.input(models.FieldPostalCode, v) }

func (f ContactForm) InputCountry(v string) error { return f.input(models.FieldCountry, v) }

func (f ContactForm) input(field models.Field, v string) error {
	f.b.report.Step("Enter " + field.Label() + ": " + v)
	if err := f.b.Fill(f.loc.Input(field), v); err != nil {
		return &FieldInputError{Screen: f.b.screen, Field: field, Err: err}
	}
	return nil
}

// fillAll enters every contact field in form order; empty values are still typed.
func (f ContactForm) fillAll(c models.Contact) error {
	for _, field := range models.ContactFields {
		if err := f.input(field, c.Value(field)); err != nil {
			return err
		}
	}
	return nil
}
