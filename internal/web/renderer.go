// Package web renders HTML views. Handlers consume it through the
// Renderer interface and never touch templates directly.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns a view name plus data into HTML.
type Renderer interface {
	Render(w io.Writer, view string, data any) error
}

// HTMLRenderer renders the embedded html/template views.
type HTMLRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTMLRenderer{templates: templates}, nil
}

func (r *HTMLRenderer) Render(w io.Writer, view string, data any) error {
	return r.templates.ExecuteTemplate(w, view, data)
}
