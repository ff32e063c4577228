package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gotodo/webapp/internal/web"
)

func parseTodoID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "todoID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid todo id")
	}
	return id, nil
}

// render buffers the view before writing so a template failure becomes a
// clean 500 instead of a half-written page.
func render(w http.ResponseWriter, renderer web.Renderer, status int, view string, data any) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, view, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
