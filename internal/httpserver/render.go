package httpserver

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"todolist/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// renderer adapts html/template to echo's Renderer interface.
type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	return &renderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// formData feeds the login and register views.
type formData struct {
	Error string
}

// dashboardData feeds the home and tasks views.
type dashboardData struct {
	User  models.User
	Tasks []models.Task
	Error string
}
