// ABOUTME: TemplateEngine loads embedded HTML templates and renders them with Go's html/template.
// ABOUTME: Model descriptions and features are Markdown, converted with goldmark at render time.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": markdownToHTML,
	}
}

// markdownToHTML converts a markdown string to HTML using goldmark.
// Raw HTML in the input is dropped by goldmark's default renderer.
func markdownToHTML(input string) template.HTML {
	var buf bytes.Buffer
	md := goldmark.New()
	if err := md.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}

// NewTemplateEngine parses all embedded templates. Each page is parsed together
// with the layout so that the layout wraps every page.
func NewTemplateEngine() (*TemplateEngine, error) {
	pages := []string{
		"home.html",
		"model.html",
	}

	engine := &TemplateEngine{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs()).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}
	return engine, nil
}

// Render executes the named template into a buffer, then writes it as text/html.
func (e *TemplateEngine) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := e.RenderTo(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// RenderTo executes the named template into an arbitrary writer.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
