// Package view is the navigation state machine. Access rules are applied
// when a view is rendered, not when it is entered: a user may navigate
// anywhere and sees a denial message where the session does not permit it.
package view

import (
	"fmt"
	"sync"

	"github.com/arunvm123/bookingportal/web-client/model"
)

type View string

const (
	Events     View = "events"
	MyBookings View = "mybookings"
	Login      View = "login"
	Signup     View = "signup"
	Admin      View = "admin"
)

const (
	MessageLoginRequired  = "You must be logged in to view your bookings."
	MessageAdminRequired  = "Access denied. You must be an admin to view this page."
	MessageLoginToBook    = "Please log in to view and book events."
	NoticeSignupSucceeded = "Sign up successful! Please log in."
)

var views = map[View]bool{Events: true, MyBookings: true, Login: true, Signup: true, Admin: true}

// ParseView maps user input onto a known view.
func ParseView(name string) (View, error) {
	v := View(name)
	if !views[v] {
		return "", fmt.Errorf("unknown view %q", name)
	}
	return v, nil
}

// SessionSource is read on every render.
type SessionSource interface {
	Session() model.Session
}

// Screen is what the current view should show. Denied screens render only
// Message; otherwise Message is an informational prompt.
type Screen struct {
	View    View
	Denied  bool
	Message string
	Notice  string
}

// Link is one navigation entry offered for the current session.
type Link struct {
	Label   string
	Command string
}

type Router struct {
	session SessionSource

	mu      sync.Mutex
	current View
	notice  string
}

func NewRouter(session SessionSource) *Router {
	return &Router{session: session, current: Events}
}

func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate is an explicit user transition. It clears any pending notice.
func (r *Router) Navigate(v View) error {
	if !views[v] {
		return fmt.Errorf("unknown view %q", v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = v
	r.notice = ""
	return nil
}

// LoggedIn moves to the event list after a successful login.
func (r *Router) LoggedIn() {
	r.force(Events, "")
}

// SignedUp moves to the login form with a confirmation notice.
func (r *Router) SignedUp() {
	r.force(Login, NoticeSignupSucceeded)
}

// LoggedOut moves to the login form.
func (r *Router) LoggedOut() {
	r.force(Login, "")
}

func (r *Router) force(v View, notice string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = v
	r.notice = notice
}

func (r *Router) Render() Screen {
	s := r.session.Session()

	r.mu.Lock()
	screen := Screen{View: r.current, Notice: r.notice}
	r.mu.Unlock()

	switch screen.View {
	case MyBookings:
		if !s.Authenticated {
			screen.Denied = true
			screen.Message = MessageLoginRequired
		}
	case Admin:
		if !s.IsAdmin() {
			screen.Denied = true
			screen.Message = MessageAdminRequired
		}
	case Events:
		if !s.Authenticated {
			screen.Message = MessageLoginToBook
		}
	}
	return screen
}

// Links lists the navigation entries for the current session.
func (r *Router) Links() []Link {
	s := r.session.Session()

	links := []Link{{Label: "Events", Command: string(Events)}}
	if s.Authenticated {
		links = append(links, Link{Label: "My Bookings", Command: string(MyBookings)})
	}
	if s.IsAdmin() {
		links = append(links, Link{Label: "Admin", Command: string(Admin)})
	}
	if s.Authenticated {
		links = append(links, Link{Label: "Logout", Command: "logout"})
	} else {
		links = append(links,
			Link{Label: "Login", Command: string(Login)},
			Link{Label: "Sign Up", Command: string(Signup)},
		)
	}
	return links
}
