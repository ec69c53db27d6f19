// Package web renders the HTML pages served next to the API.
package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"hbnb/internal/errors"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheets referenced by the templates, rooted at "static".
func Static() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"plural": plural,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the named template with data.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return errors.WithStack(r.templates.ExecuteTemplate(w, name, data))
}

// plural picks the word form for n, as in "1 Guest" and "2 Guests".
func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
