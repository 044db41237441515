package apiclient

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	json "github.com/json-iterator/go"

	"contact-list-e2e/internal/models"
)

// fakeApp is an in-memory rendition of the contact list API.
type fakeApp struct {
	mu       sync.Mutex
	users    map[string]models.Registration
	tokens   map[string]string
	contacts map[string]models.Contact
	seq      int
	requests []*http.Request
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		users:    map[string]models.Registration{},
		tokens:   map[string]string{},
		contacts: map[string]models.Contact{},
	}
}

func (a *fakeApp) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *fakeApp) fail(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, models.ErrorResponse{Message: msg})
}

func (a *fakeApp) nextID() string {
	a.seq++
	return fmt.Sprintf("%024x", a.seq)
}

func (a *fakeApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, r.Clone(r.Context()))

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/users":
		var reg models.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			a.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, taken := a.users[reg.Email]; taken {
			a.fail(w, http.StatusBadRequest, "Email address is already in use")
			return
		}
		a.users[reg.Email] = reg
		a.issue(w, http.StatusCreated, reg)
		return
	case r.Method == http.MethodPost && r.URL.Path == "/users/login":
		var cr models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			a.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		reg, ok := a.users[cr.Email]
		if !ok || reg.Password != cr.Password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		a.issue(w, http.StatusOK, reg)
		return
	}

	if _, ok := a.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]; !ok {
		a.fail(w, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/contacts/")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/users/logout":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPost && r.URL.Path == "/contacts":
		var c models.Contact
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil || !strings.Contains(c.Email, "@") {
			a.fail(w, http.StatusBadRequest, "Contact validation failed: email: Email is invalid")
			return
		}
		c.ID = a.nextID()
		a.contacts[c.ID] = c
		a.writeJSON(w, http.StatusCreated, c)
	case r.Method == http.MethodGet && r.URL.Path == "/contacts":
		list := make([]models.Contact, 0, len(a.contacts))
		for _, c := range a.contacts {
			list = append(list, c)
		}
		a.writeJSON(w, http.StatusOK, list)
	case r.URL.Path == "/contacts/"+id:
		c, ok := a.contacts[id]
		if !ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Invalid Contact ID"))
			return
		}
		switch r.Method {
		case http.MethodGet:
			a.writeJSON(w, http.StatusOK, c)
		case http.MethodPut:
			var upd models.Contact
			if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
				a.fail(w, http.StatusBadRequest, err.Error())
				return
			}
			upd.ID = id
			a.contacts[id] = upd
			a.writeJSON(w, http.StatusOK, upd)
		case http.MethodDelete:
			delete(a.contacts, id)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("Contact deleted"))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (a *fakeApp) issue(w http.ResponseWriter, status int, reg models.Registration) {
	token := "token-" + reg.Email
	a.tokens[token] = reg.Email
	a.writeJSON(w, status, models.AuthResponse{
		User:  models.User{ID: "u-" + reg.Email, FirstName: reg.FirstName, LastName: reg.LastName, Email: reg.Email},
		Token: token,
	})
}
