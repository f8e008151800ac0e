package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TableRenderer prints the burndown as a terminal table.
type TableRenderer struct{}

// Render writes the per-day table for r to w.
func (TableRenderer) Render(w io.Writer, r *application.Report) error {
	columns := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Ideal", Width: 6},
		{Title: "Actual", Width: 6},
		{Title: "Closed", Width: 60},
	}

	rows := make([]table.Row, 0, len(r.WorkingDays))
	for i, d := range r.WorkingDays {
		ideal := ""
		if i < len(r.Ideal) {
			ideal = strconv.FormatFloat(r.Ideal[i], 'f', 1, 64)
		}
		actual, closed := "", ""
		if i < len(r.Series) {
			day := r.Series[i]
			actual = strconv.Itoa(day.Remaining)
			if day.CarriedForward {
				actual += "*"
			}
			closed = strings.Join(day.Closed, "; ")
		}
		rows = append(rows, table.Row{d.Format(sprint.DateFormat), ideal, actual, closed})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+3),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle() // static view
	t.SetStyles(s)

	heading := Title(r.Window.Number, r.TeamName)
	summary := fmt.Sprintf("%s .. %s  total %d  delivered %d",
		r.Window.Start.Format(sprint.DateFormat),
		r.Window.Due.Format(sprint.DateFormat),
		r.TotalPoints,
		r.Delivered())

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n",
		titleStyle.Render(heading),
		summary,
		t.View(),
		noteStyle.Render("* no closures recorded yet, value carried forward"))
	return err
}
