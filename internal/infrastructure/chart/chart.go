// Package chart renders sprint burndown reports.
package chart

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

//go:embed templates/*
var templatesFS embed.FS

// Chart is the renderer input: two series over the sprint's working days.
// Actual may be shorter than Labels while the sprint is running.
type Chart struct {
	RunID  string
	Title  string
	Labels []string
	Ideal  []float64
	Actual []int
	Hover  []string
}

// Title formats the chart heading for a sprint.
func Title(number int, team string) string {
	return fmt.Sprintf("Sprint %d - Burndown chart - %s QSF team", number, team)
}

// FromReport builds chart data from a burndown report.
func FromReport(r *application.Report) Chart {
	c := Chart{
		RunID:  r.RunID,
		Title:  Title(r.Window.Number, r.TeamName),
		Ideal:  r.Ideal,
		Actual: r.Series.Values(),
	}
	for _, d := range r.WorkingDays {
		c.Labels = append(c.Labels, d.Format(sprint.DateFormat))
	}
	for _, d := range r.Series {
		c.Hover = append(c.Hover, strings.Join(d.Closed, "<br>"))
	}
	return c
}

// HTMLRenderer writes a standalone interactive chart page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded page template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/burndown.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render writes the page for c to w.
func (h *HTMLRenderer) Render(w io.Writer, c Chart) error {
	if err := h.tmpl.ExecuteTemplate(w, "burndown.html", c); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteFile renders c into the file at path.
func (h *HTMLRenderer) WriteFile(path string, c Chart) error {
	// #nosec G304 -- output path comes from the operator
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := h.Render(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
