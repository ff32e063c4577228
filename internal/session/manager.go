// Package session binds a request to an authenticated user id via a
// signed, cookie-backed session.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/gotodo/webapp/types"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "gotodo_session"

	sessionKeyUserID = "auth_user_id"

	maxAgeSeconds = 7 * 24 * 60 * 60
)

// ErrNoSession is returned when no authenticated identity is bound to the
// request, or the stored id no longer resolves to a user.
var ErrNoSession = errors.New("no authenticated session")

// UserResolver resolves a stored user id back to a User.
type UserResolver interface {
	GetByID(ctx context.Context, id int) (types.User, error)
}

// Manager reads and writes the cookie session and resolves the current
// user through the credential store.
type Manager struct {
	store sessions.Store
	users UserResolver
}

// NewManager constructs a Manager signing cookies with the given secret.
func NewManager(secret string, users UserResolver) *Manager {
	cookieStore := sessions.NewCookieStore([]byte(secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{
		store: cookieStore,
		users: users,
	}
}

// Login marks the user as the authenticated identity for subsequent
// requests in the same client session.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, user types.User) error {
	session, _ := m.store.Get(r, SessionCookieName)
	session.Values[sessionKeyUserID] = user.ID
	return session.Save(r, w)
}

// Logout clears the authenticated identity.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionCookieName)
	delete(session.Values, sessionKeyUserID)
	return session.Save(r, w)
}

// CurrentUser resolves the session's stored id back to a User. It returns
// ErrNoSession when no id is stored or the id no longer resolves.
func (m *Manager) CurrentUser(r *http.Request) (types.User, error) {
	session, _ := m.store.Get(r, SessionCookieName)
	id, ok := session.Values[sessionKeyUserID].(int)
	if !ok || id < 1 {
		return types.User{}, ErrNoSession
	}

	user, err := m.users.GetByID(r.Context(), id)
	if err != nil {
		return types.User{}, ErrNoSession
	}
	return user, nil
}

// RequireAuth redirects unauthenticated requests to the login page
// instead of invoking the wrapped handler.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := m.CurrentUser(r); err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Flash queues a one-shot message surfaced on the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, message string) error {
	session, _ := m.store.Get(r, SessionCookieName)
	session.AddFlash(message)
	return session.Save(r, w)
}

// Flashes drains and returns queued flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := m.store.Get(r, SessionCookieName)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save(r, w)

	messages := make([]string, 0, len(raw))
	for _, value := range raw {
		if msg, ok := value.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
