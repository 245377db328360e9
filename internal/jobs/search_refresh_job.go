package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"roadside/internal/core/application/usecases/commands"
)

// SearchRefreshJob periodically sweeps all SEARCHING requests through the
// escalation policy. The read paths already refresh lazily; the sweep bounds
// how stale a request can get when nobody is reading it.
type SearchRefreshJob struct {
	handler commands.RefreshSearchingRequestsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSearchRefreshJob creates a job that refreshes searching requests every
// five seconds.
func NewSearchRefreshJob(
	handler commands.RefreshSearchingRequestsCommandHandler, logger *slog.Logger,
) *SearchRefreshJob {
	return &SearchRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "search_refresh_job"),
	}
}

// Start begins the refresh sweep on a five second schedule.
func (j *SearchRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRefreshSearchingRequestsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Search refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Search refresh job started (running every five seconds)")
	return nil
}

// Stop stops the refresh sweep.
func (j *SearchRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Search refresh job stopped")
}
