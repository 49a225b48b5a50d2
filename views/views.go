// Package views renders the portal's HTML pages and serves its static assets.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"videothingy/trailer-portal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/sw.js
var serviceWorker []byte

// Page names accepted by Render.
const (
	PageHome  = "home"
	PageWatch = "watch"
	PageAdmin = "admin"
)

var funcs = template.FuncMap{
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("Jan 2, 2006")
	},
}

// HomeData feeds the public catalog page.
type HomeData struct {
	Videos []models.Video
}

// WatchData feeds a single video page.
type WatchData struct {
	Video   models.Video
	BaseURL string
}

// AdminData feeds the admin page.
type AdminData struct {
	Videos []models.Video
	Key    string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageHome, PageWatch, PageAdmin} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes the named page into a buffer.
func (r *Renderer) Render(page string, data any) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// ServiceWorker returns the static worker script.
func ServiceWorker() []byte {
	return serviceWorker
}
