package models

import (
	"time"

	"github.com/iancoleman/strcase"
)

// Field names one input of the contact, registration or login forms.
// The key form ("stateProvince") is shared by the JSON payloads, the fixture
// files and the element ids of the application.
type Field string

const (
	FieldFirstName     Field = "FirstName"
	FieldLastName      Field = "LastName"
	FieldBirthdate     Field = "Birthdate"
	FieldEmail         Field = "Email"
	FieldPassword      Field = "Password"
	FieldPhone         Field = "Phone"
	FieldStreet1       Field = "Street1"
	FieldStreet2       Field = "Street2"
	FieldCity          Field = "City"
	FieldStateProvince Field = "StateProvince"
	FieldPostalCode    Field = "PostalCode"
	FieldCountry       Field = "Country"
)

// ContactFields lists the contact form inputs in the order the form is filled.
var ContactFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldBirthdate,
	FieldEmail,
	FieldPhone,
	FieldStreet1,
	FieldStreet2,
	FieldCity,
	FieldStateProvince,
	FieldPostalCode,
	FieldCountry,
}

// RegistrationFields lists the sign-up form inputs.
var RegistrationFields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPassword}

// CredentialFields lists the login form inputs.
var CredentialFields = []Field{FieldEmail, FieldPassword}

// Key returns the camelCase wire name of the field.
func (f Field) Key() string {
	return strcase.ToLowerCamel(string(f))
}

// Label returns a human readable name, e.g. "state province".
func (f Field) Label() string {
	return strcase.ToDelimited(string(f), ' ')
}

// Contact is one entry of the contact list. Optional fields are empty strings,
// never omitted, so every form input still receives a value.
type Contact struct {
	ID            string `json:"_id,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Birthdate     string `json:"birthdate"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Street1       string `json:"street1"`
	Street2       string `json:"street2"`
	City          string `json:"city"`
	StateProvince string `json:"stateProvince"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	Owner         string `json:"owner,omitempty"`
}

// Value returns the contact's value for f, or "" for fields a contact does not carry.
func (c Contact) Value(f Field) string {
	switch f {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldBirthdate:
		return c.Birthdate
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	case FieldStreet1:
		return c.Street1
	case FieldStreet2:
		return c.Street2
	case FieldCity:
		return c.City
	case FieldStateProvince:
		return c.StateProvince
	case FieldPostalCode:
		return c.PostalCode
	case FieldCountry:
		return c.Country
	}
	return ""
}

// Values returns the non-empty field values in form order.
func (c Contact) Values() []string {
	var out []string
	for _, f := range ContactFields {
		if v := c.Value(f); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// User represents an application account as returned by the API.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Registration is the sign-up payload.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the body of every documented non-2xx answer.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Marker tags a test as browser-driven or API-only.
type Marker string

const (
	MarkerAPI Marker = "api"
	MarkerUI  Marker = "user_interface"
)

// Outcome is the final state of one recorded test.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Run is one invocation of the suite.
type Run struct {
	ID        string    `json:"id"`
	BaseURL   string    `json:"base_url"`
	StartedAt time.Time `json:"started_at"`
}

// Result is the recorded outcome of one test in a run.
type Result struct {
	ID         int64         `json:"id"`
	RunID      string        `json:"run_id"`
	Test       string        `json:"test"`
	Marker     Marker        `json:"marker"`
	Outcome    Outcome       `json:"outcome"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Attachment is a report artifact stored for a test.
type Attachment struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Test      string    `json:"test"`
	Label     string    `json:"label"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}
