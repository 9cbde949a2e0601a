package html

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var layout = NewTemplate()

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the embedded layouts.
func NewTemplate() *Template {
	return &Template{
		Templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}
