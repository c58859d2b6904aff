package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

// View renders the embedded HTML templates. Templates share the "header" and
// "footer" partials from layout.html.
type View struct {
	templates *template.Template
}

// NewView parses the embedded templates.
func NewView() (*View, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"cents": FormatCents,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &View{templates: t}, nil
}

// Render executes the named template. The resolved principal, when present,
// is injected as .Principal so the navigation can adapt to the viewer.
func (v *View) Render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		data["Principal"] = principal
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return v.templates.ExecuteTemplate(c, name, data)
}

// FormatCents renders an integer cent amount as dollars.
func FormatCents(v int64) string {
	return fmt.Sprintf("$%d.%02d", v/100, v%100)
}
