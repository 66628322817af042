package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages renders the server-side screens.
type Pages struct {
	t *template.Template
}

// NewPages parses the embedded templates.
func NewPages() (*Pages, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"price": formatPrice,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Pages{t: t}, nil
}

// Render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (p *Pages) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := p.t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// formatPrice prints amounts without trailing zeros: 200, 120.5.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
