package pages

// Screen identifies one screen of the application.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenRegistration
	ScreenContactList
	ScreenAddContact
	ScreenContactDetails
	ScreenEditContact
)

var screenInfo = map[Screen]struct{ name, path string }{
	ScreenHome:           {"home", "/"},
	ScreenRegistration:   {"registration", "/addUser"},
	ScreenContactList:    {"contact list", "/contactList"},
	ScreenAddContact:     {"add contact", "/addContact"},
	ScreenContactDetails: {"contact details", "/contactDetails"},
	ScreenEditContact:    {"edit contact", "/editContact"},
}

func (s Screen) String() string {
	if info, ok := screenInfo[s]; ok {
		return info.name
	}
	return "unknown"
}

// Path is the location of the screen relative to the application root.
func (s Screen) Path() string {
	return screenInfo[s].path
}

// Action is a navigating user action.
type Action string

const (
	ActionLogin      Action = "login"
	ActionSignUp     Action = "sign up"
	ActionRegister   Action = "register"
	ActionCancel     Action = "cancel"
	ActionLogout     Action = "logout"
	ActionAddContact Action = "add contact"
	ActionSubmit     Action = "submit"
	ActionSelect     Action = "select contact"
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
	ActionReturn     Action = "return to list"
)

// Transition is one edge of the screen graph.
type Transition struct {
	Action Action
	To     Screen
}

// Transitions is the complete screen graph. Page objects only expose the
// actions listed for their screen.
var Transitions = map[Screen][]Transition{
	ScreenHome: {
		{ActionLogin, ScreenContactList},
		{ActionSignUp, ScreenRegistration},
	},
	ScreenRegistration: {
		{ActionRegister, ScreenContactList},
		{ActionCancel, ScreenHome},
	},
	ScreenContactList: {
		{ActionAddContact, ScreenAddContact},
		{ActionSelect, ScreenContactDetails},
		{ActionLogout, ScreenHome},
	},
	ScreenAddContact: {
		{ActionSubmit, ScreenContactList},
		{ActionCancel, ScreenContactList},
	},
	ScreenContactDetails: {
		{ActionEdit, ScreenEditContact},
		{ActionDelete, ScreenContactList},
		{ActionReturn, ScreenContactList},
	},
	ScreenEditContact: {
		{ActionSubmit, ScreenContactDetails},
		{ActionCancel, ScreenContactDetails},
	},
}

// CanTransition reports whether action a is offered on screen from.
func CanTransition(from Screen, a Action) bool {
	_, ok := Next(from, a)
	return ok
}

// Next returns the screen reached by taking action a on screen from.
func Next(from Screen, a Action) (Screen, bool) {
	for _, tr := range Transitions[from] {
		if tr.Action == a {
			return tr.To, true
		}
	}
	return 0, false
}
