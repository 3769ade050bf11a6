package api

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"coursedash/internal/dashboard"
	"coursedash/internal/models"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTitle = "Análise de Status de Cursos"

var templateFuncs = template.FuncMap{
	"percent": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
}

// Templates implements echo.Renderer over the embedded HTML templates.
type Templates struct {
	t *template.Template
}

func NewTemplates() *Templates {
	return &Templates{
		t: template.Must(template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

type pageData struct {
	Title    string
	Infos    []string
	Warnings []string
	Error    string
	Report   *models.Report
}

// Index is the page before any upload: the driver only prompts.
func (h *Handler) Index(c echo.Context) error {
	host := &dashboard.Collector{}
	if _, _, err := h.driver.Run(&dashboard.NamedFile{}, host); err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Render(http.StatusOK, "dashboard.html", pageData{Title: pageTitle, Infos: host.Infos})
}

// Dashboard renders the charts and region tables for an uploaded file.
func (h *Handler) Dashboard(c echo.Context) error {
	host, pass, name, err := h.run(c)
	if err != nil {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			return err
		}
		if host != nil && host.Err == nil && len(host.Infos) > 0 {
			// posted without a file: same prompt as the index page
			return c.Render(http.StatusOK, "dashboard.html", pageData{Title: pageTitle, Infos: host.Infos})
		}
		return c.Render(he.Code, "dashboard.html", pageData{Title: pageTitle, Error: fmt.Sprint(he.Message)})
	}

	rep := host.Report(pass, name)
	return c.Render(http.StatusOK, "dashboard.html", pageData{
		Title:    pageTitle,
		Warnings: rep.Warnings,
		Report:   &rep,
	})
}
