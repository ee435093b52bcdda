// Package web holds the HTML pages served by the application.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// Page names accepted by Render.
const (
	PageIndex     = "index"
	PageAdd       = "add"
	PageDashboard = "dashboard"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

// Pages renders the embedded templates. Each page is parsed together with
// the shared layout.
type Pages struct {
	pages map[string]*template.Template
}

func Load() (*Pages, error) {
	p := &Pages{pages: map[string]*template.Template{}}
	for _, name := range []string{PageIndex, PageAdd, PageDashboard} {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(files, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

// Render executes the named page into a buffer first so a template failure
// never leaves a half-written response.
func (p *Pages) Render(w http.ResponseWriter, code int, name string, data any) error {
	t, ok := p.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := buf.WriteTo(w)
	return err
}
