package email

import (
	"embed"
	"html/template"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (t Template) file() string {
	return string(t) + ".html"
}
