package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/chart"
	"github.com/felixgeelhaar/burndown/internal/infrastructure/config"
	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
	"github.com/spf13/cobra"
)

var (
	burndownSprint  int
	burndownConfig  string
	burndownOut     string
	burndownJSON    bool
	burndownNoChart bool
	burndownVerbose bool
)

func runBurndown(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), burndownVerbose)

	cfg, err := config.Load(burndownConfig)
	if err != nil {
		return NewCLIError("failed to load config", "Check "+config.DefaultFile+" or pass --config", err)
	}

	services := wiring.BuildAppServices(cfg, logger)
	report, err := services.Burndown.Report(cmd.Context(), application.ReportRequest{Sprint: burndownSprint})
	if err != nil {
		return MapError(err)
	}

	out := cmd.OutOrStdout()
	if burndownJSON {
		if err := outputBurndownJSON(out, report); err != nil {
			return err
		}
	} else if err := (chart.TableRenderer{}).Render(out, report); err != nil {
		return err
	}

	if burndownNoChart {
		return nil
	}
	path := burndownOut
	if path == "" {
		path = fmt.Sprintf("burndown-sprint-%d.html", report.Window.Number)
	}
	renderer, err := chart.NewHTMLRenderer()
	if err != nil {
		return err
	}
	if err := renderer.WriteFile(path, chart.FromReport(report)); err != nil {
		return err
	}
	logger.Info("chart written", "path", path)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func outputBurndownJSON(w io.Writer, r *application.Report) error {
	days := make([]map[string]interface{}, len(r.Series))
	for i, d := range r.Series {
		closed := d.Closed
		if closed == nil {
			closed = []string{}
		}
		days[i] = map[string]interface{}{
			"date":            d.Date.Format(sprint.DateFormat),
			"remaining":       d.Remaining,
			"closed":          closed,
			"carried_forward": d.CarriedForward,
		}
	}

	labels := make([]string, len(r.WorkingDays))
	for i, d := range r.WorkingDays {
		labels[i] = d.Format(sprint.DateFormat)
	}

	output := map[string]interface{}{
		"run_id":       r.RunID,
		"sprint":       r.Window.Number,
		"team":         r.TeamName,
		"start":        r.Window.Start.Format(sprint.DateFormat),
		"due":          r.Window.Due.Format(sprint.DateFormat),
		"today":        r.Today.Format(sprint.DateFormat),
		"total_points": r.TotalPoints,
		"delivered":    r.Delivered(),
		"working_days": labels,
		"ideal":        r.Ideal,
		"days":         days,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func init() {
	f := RootCmd.Flags()
	f.IntVar(&burndownSprint, "sprint", 0, "Sprint number to report (default: current sprint)")
	f.StringVar(&burndownConfig, "config", "", "Path to config file (default: ./"+config.DefaultFile+" if present)")
	f.StringVarP(&burndownOut, "out", "o", "", "Chart output file (default: burndown-sprint-<N>.html)")
	f.BoolVar(&burndownJSON, "json", false, "Output in JSON format")
	f.BoolVar(&burndownNoChart, "no-chart", false, "Skip writing the HTML chart")
	f.BoolVarP(&burndownVerbose, "verbose", "v", false, "Log every processed ticket")
}
