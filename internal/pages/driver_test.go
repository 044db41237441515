package pages

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://contacts.test"

// testSite is a static rendition of the application. Clicking an element with
// data-href navigates there; data-confirm elements only navigate when a dialog
// handler was armed first.
var testSite = map[string]string{
	"/": `<form>
		<input id="email"><input id="password" type="password">
		<button id="submit" data-href="/contactList">Submit</button>
		<button id="signup" data-href="/addUser">Sign up</button>
	</form>`,
	"/addUser": `<form>
		<input id="firstName"><input id="lastName"><input id="email"><input id="password">
		<button id="submit" data-href="/contactList">Submit</button>
		<button id="cancel" data-href="/">Cancel</button>
	</form>`,
	"/contactList": `<button id="add-contact" data-href="/addContact">Add a New Contact</button>
		<button id="logout" data-href="/">Logout</button>
		<table id="myTable"><tbody>
		<tr class="contactTableBodyRow" data-href="/contactDetails"><td>Amy Miller</td>	<td>amiller@fake.com</td></tr>
		<tr class="contactTableBodyRow" data-href="/contactDetails"><td>John Doe</td>	<td>jdoe@fake.com</td></tr>
		</tbody></table>`,
	"/addContact": contactFormHTML(""),
	"/contactDetails": `<button id="edit-contact" data-href="/editContact">Edit Contact</button>
		<button id="delete" data-href="/contactList" data-confirm="true">Delete Contact</button>
		<button id="return" data-href="/contactList">Return to Contact List</button>
		<form id="contactDetails">
		<p><label>First Name:</label><span id="firstName">Amy</span></p>
		<p><label>Last Name:</label><span id="lastName">Miller</span></p>
		<p><label>Email:</label><span id="email">amiller@fake.com</span></p>
		</form>`,
	"/editContact": contactFormHTML("Amy"),
}

func contactFormHTML(firstName string) string {
	var b strings.Builder
	b.WriteString("<form>")
	for _, id := range []string{"firstName", "lastName", "birthdate", "email", "phone", "street1",
		"street2", "city", "stateProvince", "postalCode", "country"} {
		value := ""
		if id == "firstName" {
			value = firstName
		}
		fmt.Fprintf(&b, `<input id="%s" value="%s">`, id, value)
	}
	submitTarget := "/contactList"
	if firstName != "" {
		submitTarget = "/contactDetails"
	}
	fmt.Fprintf(&b, `<button id="submit" data-href="%s">Submit</button>`, submitTarget)
	fmt.Fprintf(&b, `<button id="cancel" data-href="%s">Cancel</button>`, submitTarget)
	b.WriteString("</form>")
	return b.String()
}

type fakeDriver struct {
	t             *testing.T
	site          map[string]string
	url           string
	doc           *goquery.Document
	values        map[string]string
	events        []string
	dialogArmed   bool
	screenshotErr error
	screenshots   int
}

func newFakeDriver(t *testing.T, site map[string]string, start string) *fakeDriver {
	d := &fakeDriver{t: t, site: site, values: map[string]string{}}
	d.load(start)
	return d
}

func (d *fakeDriver) load(path string) {
	html, ok := d.site[path]
	require.True(d.t, ok, "no page at %s", path)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(d.t, err)
	d.doc = doc
	d.url = testBaseURL + path
}

func (d *fakeDriver) unique(selector string) (*goquery.Selection, error) {
	s := d.doc.Find(selector)
	switch s.Length() {
	case 0:
		return nil, fmt.Errorf("timeout: waiting for %s", selector)
	case 1:
		return s, nil
	default:
		return nil, fmt.Errorf("strict mode violation: %s resolved to %d elements", selector, s.Length())
	}
}

func (d *fakeDriver) Fill(selector, text string, _ time.Duration) error {
	if _, err := d.unique(selector); err != nil {
		return err
	}
	d.values[selector] = text
	d.events = append(d.events, "fill "+selector)
	return nil
}

func (d *fakeDriver) Click(selector string, _ time.Duration) error {
	s, err := d.unique(selector)
	if err != nil {
		return err
	}
	d.events = append(d.events, "click "+selector)
	d.follow(s)
	return nil
}

func (d *fakeDriver) ClickNth(selector string, index int, _ time.Duration) error {
	s := d.doc.Find(selector).Eq(index)
	if s.Length() == 0 {
		return fmt.Errorf("timeout: waiting for %s >> nth=%d", selector, index)
	}
	d.events = append(d.events, fmt.Sprintf("click %s[%d]", selector, index))
	d.follow(s)
	return nil
}

func (d *fakeDriver) follow(s *goquery.Selection) {
	href, ok := s.Attr("data-href")
	if !ok {
		return
	}
	if _, confirm := s.Attr("data-confirm"); confirm {
		if !d.dialogArmed {
			return
		}
		d.dialogArmed = false
	}
	d.load(href)
}

func (d *fakeDriver) Count(selector string) (int, error) {
	return d.doc.Find(selector).Length(), nil
}

func (d *fakeDriver) InnerTexts(selector string) ([]string, error) {
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out, nil
}

func (d *fakeDriver) WaitForText(selector, text string, _ time.Duration) error {
	texts, _ := d.InnerTexts(selector)
	for _, t := range texts {
		if strings.Contains(t, text) {
			return nil
		}
	}
	return fmt.Errorf("timeout: no %s contains %q", selector, text)
}

func (d *fakeDriver) WaitForValue(selector string, _ time.Duration) error {
	if d.values[selector] != "" {
		return nil
	}
	s, err := d.unique(selector)
	if err != nil {
		return err
	}
	if v, _ := s.Attr("value"); v != "" {
		return nil
	}
	return fmt.Errorf("timeout: %s stayed empty", selector)
}

func (d *fakeDriver) URL() string { return d.url }

func (d *fakeDriver) WaitForURL(url string, _ time.Duration) error {
	if d.url != url {
		return errors.New("timeout waiting for navigation to " + url)
	}
	return nil
}

func (d *fakeDriver) Screenshot() ([]byte, error) {
	d.screenshots++
	if d.screenshotErr != nil {
		return nil, d.screenshotErr
	}
	return []byte("\x89PNG"), nil
}

func (d *fakeDriver) AcceptNextDialog() func() {
	d.dialogArmed = true
	d.events = append(d.events, "accept dialog")
	return func() {
		d.dialogArmed = false
		d.events = append(d.events, "disarm dialog")
	}
}

type fakeReporter struct {
	steps       []string
	attachments []string
	err         error
}

func (r *fakeReporter) Step(title string) { r.steps = append(r.steps, title) }

func (r *fakeReporter) Attach(label string, _ []byte) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.attachments = append(r.attachments, label)
	return "/results/" + label + ".png", nil
}

func testOptions() Options {
	return Options{BaseURL: testBaseURL, ActionTimeout: time.Second, NavigationTimeout: time.Second}
}
