package wiring

import (
	"log/slog"
	"time"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/config"
	"github.com/felixgeelhaar/burndown/internal/infrastructure/redmine"
	"github.com/felixgeelhaar/burndown/pkg/application"
	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
)

// AppServices exposes the application services wired to the configured tracker.
type AppServices struct {
	Config   *config.Config
	Source   burndown.TicketSource
	Burndown *application.BurndownService
}

// BuildAppServices constructs the Redmine client and burndown service from cfg.
func BuildAppServices(cfg *config.Config, logger *slog.Logger) *AppServices {
	opts := []redmine.Option{redmine.WithLogger(logger)}
	if cfg.Redmine.MaxAttempts > 0 {
		opts = append(opts, redmine.WithRetry(cfg.Redmine.MaxAttempts, 500*time.Millisecond))
	}
	if cfg.Redmine.Timeout > 0 {
		opts = append(opts, redmine.WithTimeout(cfg.Redmine.Timeout))
	}
	source := redmine.NewClient(cfg.Redmine.URL, cfg.Redmine.APIKey, opts...)

	return &AppServices{
		Config: cfg,
		Source: source,
		Burndown: application.NewBurndownService(source, application.BurndownConfig{
			Projects: cfg.Redmine.Projects,
			TeamTag:  cfg.Team.Tag,
			TeamName: cfg.TeamName(),
			Policy:   burndown.Policy{ExcludeRejected: cfg.ExcludeRejected},
		}, logger),
	}
}
