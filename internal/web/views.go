package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var dashboardTmpl *template.Template

// LoadTemplates parses the embedded dashboard templates. Call during startup
// before serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}
	dashboardTmpl = tmpl
	return nil
}

// DashboardData is the view model for the dashboard page. The viewport is
// fixed at startup; the map does not recenter when station data changes.
type DashboardData struct {
	Title     string
	CenterLat float64
	CenterLon float64
	Zoom      int
}

func RenderDashboard(w io.Writer, data *DashboardData) error {
	if dashboardTmpl == nil {
		return errors.New("dashboard template not loaded: call web.LoadTemplates during startup")
	}
	return dashboardTmpl.ExecuteTemplate(w, "dashboard.html", data)
}
