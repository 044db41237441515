package pages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"contact-list-e2e/internal/locators"
	"contact-list-e2e/internal/models"
)

type PagesTestSuite struct {
	suite.Suite
	driver   *fakeDriver
	reporter *fakeReporter
	home     *HomePage
}

func (s *PagesTestSuite) SetupTest() {
	s.driver = newFakeDriver(s.T(), testSite, "/")
	s.reporter = &fakeReporter{}
	s.home = NewHomePage(s.driver, s.reporter, testOptions())
}

func (s *PagesTestSuite) login() *ContactListPage {
	list, err := s.home.Login("test4@fake.com", "myPassword")
	s.Require().NoError(err)
	s.Require().NoError(list.IsLoaded())
	return list
}

func (s *PagesTestSuite) TestLoginLandsOnContactList() {
	s.Require().NoError(s.home.IsLoaded())

	list := s.login()

	s.Equal("test4@fake.com", s.driver.values[locators.Home.EmailInput])
	s.Equal("myPassword", s.driver.values[locators.Home.PasswordInput])
	s.Contains(s.reporter.steps, "Input email: test4@fake.com")
	s.Contains(s.reporter.steps, "home: login")
	s.Equal(ScreenContactList, list.b.Screen())
	s.Empty(s.reporter.attachments)
}

func (s *PagesTestSuite) TestLoginMissingPasswordInput() {
	site := map[string]string{
		"/": `<input id="email"><button id="submit" data-href="/contactList">Submit</button>`,
	}
	s.driver = newFakeDriver(s.T(), site, "/")
	s.home = NewHomePage(s.driver, s.reporter, testOptions())

	_, err := s.home.Login("test4@fake.com", "myPassword")
	s.Require().Error(err)

	var fe *FieldInputError
	s.Require().ErrorAs(err, &fe)
	s.Equal(models.FieldPassword, fe.Field)
	s.Equal(ScreenHome, fe.Screen)

	var ie *InteractionError
	s.Require().ErrorAs(err, &ie)
	s.Equal(locators.Home.PasswordInput, ie.Selector)

	s.Contains(err.Error(), "Login failed for email: test4@fake.com")
	s.Contains(err.Error(), "error inserting password")
	s.Equal([]string{"Failed to fill [id='password']"}, s.reporter.attachments)
}

func (s *PagesTestSuite) TestIsLoadedLeavesNoTrace() {
	list := s.login()
	s.reporter.steps = nil
	s.driver.events = nil

	s.Require().NoError(list.IsLoaded())
	s.Require().NoError(list.IsLoaded())

	s.Empty(s.reporter.steps)
	s.Empty(s.reporter.attachments)
	s.Empty(s.driver.events)
	s.Equal(testBaseURL+"/contactList", s.driver.URL())
}

func (s *PagesTestSuite) TestIsLoadedReportsBothLocations() {
	s.driver = newFakeDriver(s.T(), testSite, "/contactList")
	home := NewHomePage(s.driver, s.reporter, testOptions())

	err := home.IsLoaded()
	s.Require().Error(err)
	s.True(IsNavigation(err))

	var ne *NavigationError
	s.Require().ErrorAs(err, &ne)
	s.Equal(testBaseURL+"/", ne.Expected)
	s.Equal(testBaseURL+"/contactList", ne.Actual)
	s.Contains(err.Error(), "home page did not load")
	s.Equal([]string{"Page Load Failure"}, s.reporter.attachments)
}

func (s *PagesTestSuite) TestSignUpAndRegister() {
	reg, err := s.home.SignUp()
	s.Require().NoError(err)
	s.Require().NoError(reg.IsLoaded())

	list, err := reg.Register(models.Registration{
		FirstName: "Amy", LastName: "Miller", Email: "amiller@fake.com", Password: "secret123",
	})
	s.Require().NoError(err)
	s.Require().NoError(list.IsLoaded())

	s.Equal("Amy", s.driver.values[locators.Registration.FirstNameInput])
	s.Equal("secret123", s.driver.values[locators.Registration.PasswordInput])
	s.Contains(s.reporter.steps, "Enter first name: Amy")
	s.NotContains(strings.Join(s.reporter.steps, "\n"), "secret123")
}

func (s *PagesTestSuite) TestRegistrationCancel() {
	reg, err := s.home.SignUp()
	s.Require().NoError(err)

	home, err := reg.Cancel()
	s.Require().NoError(err)
	s.NoError(home.IsLoaded())
}

func (s *PagesTestSuite) TestAddContactFillsEveryField() {
	list := s.login()

	form, err := list.AddContact()
	s.Require().NoError(err)
	s.Require().NoError(form.IsLoaded())

	c := models.Contact{
		FirstName: "Amy", LastName: "Miller", Birthdate: "1992-02-02", Email: "amiller@fake.com",
		Phone: "8005554242", Street1: "13 School St.", City: "Washington",
		StateProvince: "QC", PostalCode: "A1A1A1", Country: "Canada",
	}
	s.driver.events = nil

	list, err = form.Submit(c)
	s.Require().NoError(err)
	s.Require().NoError(list.IsLoaded())

	var filled []string
	for _, e := range s.driver.events {
		if sel, ok := strings.CutPrefix(e, "fill "); ok {
			filled = append(filled, sel)
		}
	}
	want := make([]string, len(models.ContactFields))
	for i, f := range models.ContactFields {
		want[i] = locators.AddContact.Input(f)
	}
	s.Equal(want, filled)

	street2, ok := s.driver.values[locators.AddContact.Input(models.FieldStreet2)]
	s.True(ok)
	s.Empty(street2)
	s.Equal("QC", s.driver.values[locators.AddContact.Input(models.FieldStateProvince)])
	s.Contains(s.reporter.steps, "Enter state province: QC")
}

func (s *PagesTestSuite) TestAddContactCancel() {
	form, err := s.login().AddContact()
	s.Require().NoError(err)

	list, err := form.Cancel()
	s.Require().NoError(err)
	s.NoError(list.IsLoaded())
}

func (s *PagesTestSuite) TestContactRows() {
	list := s.login()

	rows, err := list.Rows()
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.NotContains(rows[0], "\t")
	s.Contains(rows[0], "Amy Miller")
	s.Contains(rows[0], "amiller@fake.com")

	s.NoError(list.WaitForContact("jdoe@fake.com"))

	found, err := list.HasContact("jdoe@fake.com")
	s.Require().NoError(err)
	s.True(found)

	found, err = list.HasContact("nobody@fake.com")
	s.Require().NoError(err)
	s.False(found)

	err = list.WaitForContact("nobody@fake.com")
	var ie *InteractionError
	s.Require().ErrorAs(err, &ie)
	s.Len(s.reporter.attachments, 1)
}

func (s *PagesTestSuite) TestSelectContactOutOfRange() {
	list := s.login()

	_, err := list.SelectContact(7)
	s.Require().Error(err)
	s.ErrorIs(err, ErrIndexOutOfRange)
	s.Contains(err.Error(), "Failed to select contact at index 7")
	s.Len(s.reporter.attachments, 1)
}

func (s *PagesTestSuite) TestEditContact() {
	details, err := s.login().SelectContact(0)
	s.Require().NoError(err)
	s.Require().NoError(details.IsLoaded())
	s.Require().NoError(details.WaitForDetails("Amy"))

	values, err := details.Details()
	s.Require().NoError(err)
	s.Equal([]string{"Amy", "Miller", "amiller@fake.com"}, values)

	edit, err := details.Edit()
	s.Require().NoError(err)
	s.Require().NoError(edit.IsLoaded())

	details, err = edit.Submit(models.Contact{FirstName: "Amy", LastName: "Miller", Email: "amy@fake.com"})
	s.Require().NoError(err)
	s.Require().NoError(details.IsLoaded())
	s.Equal("amy@fake.com", s.driver.values[locators.EditContact.Input(models.FieldEmail)])

	edit, err = details.Edit()
	s.Require().NoError(err)
	details, err = edit.Cancel()
	s.Require().NoError(err)
	s.NoError(details.IsLoaded())
}

func (s *PagesTestSuite) TestEditContactWaitsForStoredValues() {
	site := map[string]string{"/editContact": contactFormHTML("")}
	s.driver = newFakeDriver(s.T(), site, "/editContact")
	edit := newEditContactPage(NewBasePage(s.driver, s.reporter, testOptions(), ScreenEditContact))

	err := edit.IsLoaded()
	var ie *InteractionError
	s.Require().ErrorAs(err, &ie)
	s.Equal("load", ie.Action)
	s.False(IsNavigation(err))
}

func (s *PagesTestSuite) TestDeleteAcceptsDialogBeforeClick() {
	details, err := s.login().SelectContact(1)
	s.Require().NoError(err)
	s.driver.events = nil

	list, err := details.Delete()
	s.Require().NoError(err)
	s.Require().NoError(list.IsLoaded())

	s.Equal([]string{"accept dialog", "click " + locators.ContactDetails.DeleteButton}, s.driver.events)
}

func (s *PagesTestSuite) TestDeleteClickFailureDisarmsDialog() {
	site := map[string]string{
		"/contactDetails": `<button id="edit-contact" data-href="/editContact">Edit Contact</button>`,
	}
	s.driver = newFakeDriver(s.T(), site, "/contactDetails")
	details := &ContactDetailsPage{b: NewBasePage(s.driver, s.reporter, testOptions(), ScreenContactDetails)}

	_, err := details.Delete()
	s.Require().Error(err)
	s.Contains(err.Error(), "Failed to delete contact")

	s.False(s.driver.dialogArmed, "a later dialog must not be accepted")
	s.Equal([]string{"accept dialog", "disarm dialog"}, s.driver.events)
}

func (s *PagesTestSuite) TestReturnToListAndLogout() {
	details, err := s.login().SelectContact(0)
	s.Require().NoError(err)

	list, err := details.ReturnToList()
	s.Require().NoError(err)
	s.Require().NoError(list.IsLoaded())

	home, err := list.Logout()
	s.Require().NoError(err)
	s.NoError(home.IsLoaded())
}

func TestPagesTestSuite(t *testing.T) {
	suite.Run(t, new(PagesTestSuite))
}

func TestOptionsURL(t *testing.T) {
	opts := Options{BaseURL: "https://example.test/"}
	assert.Equal(t, "https://example.test/", opts.URL(ScreenHome))
	assert.Equal(t, "https://example.test/contactDetails", opts.URL(ScreenContactDetails))
}

func TestUnknownScreen(t *testing.T) {
	require.Equal(t, "unknown", Screen(99).String())
}
