package render

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	t      *template.Template
	logger *slog.Logger
}

// NewRenderer parses the embedded page templates.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t, logger: logger}, nil
}

// Render executes name into a buffer first so a template error can still
// produce a 500.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template render failed", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
