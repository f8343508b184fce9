package viewstate

import (
	"context"
	"log/slog"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/jobsapi"
)

const (
	// MissingIDReason is the failure shown when the page has no job id.
	MissingIDReason = "No job ID provided"
	// FallbackDetailReason is shown when a detail failure carries no message.
	FallbackDetailReason = "Failed to fetch job details"
)

// DetailController drives the job detail page. It re-runs whenever the
// requested id changes; a slow response for an older id never overwrites
// the state of a newer one.
type DetailController struct {
	Controller[model.JobPosting]

	jobs   core.JobReader
	logger *slog.Logger
}

// NewDetailController creates an unmounted detail controller.
func NewDetailController(jobs core.JobReader, logger *slog.Logger) *DetailController {
	if jobs == nil {
		panic("viewstate.NewDetailController: jobs is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailController{jobs: jobs, logger: logger.With("component", "detail_controller")}
}

// ID returns the id of the newest cycle.
func (d *DetailController) ID() string { return d.Key() }

// Navigate starts a cycle for id, superseding any cycle in flight.
func (d *DetailController) Navigate(ctx context.Context, id string) Outcome[model.JobPosting] {
	cycleCtx, gen, ok := d.begin(ctx, id)
	if !ok {
		return d.rejected(gen)
	}

	if id == "" {
		return d.settle(gen, Failure[model.JobPosting](MissingIDReason, false))
	}

	res := d.jobs.GetJob(cycleCtx, id)
	switch res.Status {
	case core.LookupOK:
		return d.settle(gen, Success(res.Job))
	case core.LookupNotFound:
		d.logger.InfoContext(ctx, "job not found", "job_id", id)
		return d.settle(gen, NotFound[model.JobPosting]())
	case core.LookupMissingID:
		return d.settle(gen, Failure[model.JobPosting](MissingIDReason, false))
	default:
		out := d.settle(gen, Failure[model.JobPosting](failureReason(res.Err, FallbackDetailReason), true))
		logFailure(ctx, d.logger, out.Applied, "load job failed",
			"job_id", id,
			"error", res.Err,
			"status_code", jobsapi.StatusCode(res.Err),
			"generation", gen,
		)
		return out
	}
}
