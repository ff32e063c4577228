package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gotodo/webapp/internal/forms"
	"github.com/gotodo/webapp/internal/services"
	"github.com/gotodo/webapp/internal/session"
	"github.com/gotodo/webapp/internal/store"
	"github.com/gotodo/webapp/internal/web"
	"github.com/gotodo/webapp/types"
)

// TodoHandler serves the home view and the add/delete flows.
type TodoHandler struct {
	todoService *services.TodoService
	sessions    *session.Manager
	renderer    web.Renderer
}

// NewTodoHandler constructs a TodoHandler with the provided dependencies.
func NewTodoHandler(todoService *services.TodoService, sessions *session.Manager, renderer web.Renderer) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// TodoRouter registers the home, add and delete routes on the given router.
func TodoRouter(r chi.Router, todoService *services.TodoService, sessions *session.Manager, renderer web.Renderer) {
	handler := NewTodoHandler(todoService, sessions, renderer)

	r.Get("/", handler.Home)
	r.Route("/add_todo", func(r chi.Router) {
		r.Use(sessions.RequireAuth)
		r.Get("/", handler.AddTodoForm)
		r.Post("/", handler.AddTodo)
	})
	r.With(sessions.RequireAuth).Get("/delete/{todoID}", handler.Delete)
}

type indexView struct {
	Flashes []string
	User    *types.User
	Todos   []types.TodoItem
}

type addTodoView struct {
	Error string
}

// Home lists every to-do item. No auth required.
func (h *TodoHandler) Home(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list to-dos", http.StatusInternalServerError)
		return
	}

	view := indexView{
		Flashes: h.sessions.Flashes(w, r),
		Todos:   todos,
	}
	if user, err := h.sessions.CurrentUser(r); err == nil {
		view.User = &user
	}

	render(w, h.renderer, http.StatusOK, "index.html", view)
}

// AddTodoForm renders the empty add form.
func (h *TodoHandler) AddTodoForm(w http.ResponseWriter, r *http.Request) {
	render(w, h.renderer, http.StatusOK, "add.html", addTodoView{})
}

// AddTodo creates an item owned by the current user.
func (h *TodoHandler) AddTodo(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.CurrentUser(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		render(w, h.renderer, http.StatusBadRequest, "add.html", addTodoView{
			Error: "Could not read the submitted form.",
		})
		return
	}

	form, err := forms.ParseAddTodo(r.PostForm)
	if err != nil {
		render(w, h.renderer, http.StatusBadRequest, "add.html", addTodoView{
			Error: "Name is required.",
		})
		return
	}

	if _, err := h.todoService.Add(r.Context(), form.Name, form.DueDate, user.ID); err != nil {
		http.Error(w, "failed to add to-do", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Delete removes one of the current user's items by id. Missing or
// non-owned ids surface as a flash message, not a failure page.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.CurrentUser(r)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id, err := parseTodoID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.todoService.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = h.sessions.Flash(w, r, "That to-do doesn't exist.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		http.Error(w, "failed to delete to-do", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
