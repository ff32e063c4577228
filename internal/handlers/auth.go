package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gotodo/webapp/internal/forms"
	"github.com/gotodo/webapp/internal/services"
	"github.com/gotodo/webapp/internal/session"
	"github.com/gotodo/webapp/internal/web"
)

const (
	flashEmailTaken  = "You've already signed up with that email, log in instead!"
	errorNoSuchEmail = "This email doesn't exist. Please try again."
	errorBadPassword = "Password incorrect. Please try again."
)

// AuthHandler serves the registration, login and logout pages.
type AuthHandler struct {
	userService *services.UserService
	sessions    *session.Manager
	renderer    web.Renderer
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, sessions *session.Manager, renderer web.Renderer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// AuthRouter registers the auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, sessions *session.Manager, renderer web.Renderer) {
	handler := NewAuthHandler(userService, sessions, renderer)

	r.Get("/register", handler.RegisterForm)
	r.Post("/register", handler.Register)
	r.Get("/login", handler.LoginForm)
	r.Post("/login", handler.Login)
	r.Get("/logout", handler.Logout)
}

type registerView struct {
	Flashes []string
	Error   string
	Form    forms.RegisterForm
}

type loginView struct {
	Flashes []string
	Error   string
	Form    forms.LoginForm
}

// RegisterForm renders the empty registration form.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, http.StatusOK, "register.html", registerView{
		Flashes: h.sessions.Flashes(w, r),
	})
}

// Register creates an account and establishes a session for it.
// Registration implies login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, h.renderer, http.StatusBadRequest, "register.html", registerView{
			Error: "Could not read the submitted form.",
		})
		return
	}

	form, err := forms.ParseRegister(r.PostForm)
	if err != nil {
		render(w, h.renderer, http.StatusBadRequest, "register.html", registerView{
			Error: "Name, email and password are all required.",
			Form:  form,
		})
		return
	}

	user, err := h.userService.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			_ = h.sessions.Flash(w, r, flashEmailTaken)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		http.Error(w, "failed to create account", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		http.Error(w, "failed to establish session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// LoginForm renders the empty login form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, http.StatusOK, "login.html", loginView{
		Flashes: h.sessions.Flashes(w, r),
	})
}

// Login verifies credentials and establishes a session. Failures re-render
// the login form with an inline error.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, h.renderer, http.StatusBadRequest, "login.html", loginView{
			Error: "Could not read the submitted form.",
		})
		return
	}

	form, err := forms.ParseLogin(r.PostForm)
	if err != nil {
		render(w, h.renderer, http.StatusBadRequest, "login.html", loginView{
			Error: "Email and password are both required.",
			Form:  form,
		})
		return
	}

	user, err := h.userService.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSuchEmail):
			render(w, h.renderer, http.StatusUnauthorized, "login.html", loginView{
				Error: errorNoSuchEmail,
				Form:  form,
			})
		case errors.Is(err, services.ErrBadPassword):
			render(w, h.renderer, http.StatusUnauthorized, "login.html", loginView{
				Error: errorBadPassword,
				Form:  form,
			})
		default:
			http.Error(w, "failed to authenticate", http.StatusInternalServerError)
		}
		return
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		http.Error(w, "failed to establish session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.sessions.Logout(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
