package viewstate

import (
	"context"
	"log/slog"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/jobsapi"
)

// FallbackListingReason is shown when a listing failure carries no message.
const FallbackListingReason = "Failed to fetch jobs"

// ListingController drives the job listing page.
type ListingController struct {
	Controller[*model.JobCollection]

	jobs   core.JobReader
	logger *slog.Logger
}

// NewListingController creates a mounted listing controller.
func NewListingController(jobs core.JobReader, logger *slog.Logger) *ListingController {
	if jobs == nil {
		panic("viewstate.NewListingController: jobs is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &ListingController{jobs: jobs, logger: logger.With("component", "listing_controller")}
	l.Mount()
	return l
}

// Load runs one fetch cycle. An empty collection is a success.
func (l *ListingController) Load(ctx context.Context) Outcome[*model.JobCollection] {
	cycleCtx, gen, ok := l.begin(ctx, "")
	if !ok {
		return l.rejected(gen)
	}

	jobs, err := l.jobs.GetJobs(cycleCtx)
	if err != nil {
		out := l.settle(gen, Failure[*model.JobCollection](failureReason(err, FallbackListingReason), true))
		logFailure(ctx, l.logger, out.Applied, "load jobs failed",
			"error", err,
			"status_code", jobsapi.StatusCode(err),
			"generation", gen,
		)
		return out
	}
	return l.settle(gen, Success(jobs))
}

// logFailure reports failures that reached the page at error level.
// Superseded or unmounted cycles only log at debug.
func logFailure(ctx context.Context, logger *slog.Logger, applied bool, msg string, args ...any) {
	if !applied {
		logger.DebugContext(ctx, msg+" (superseded)", args...)
		return
	}
	logger.ErrorContext(ctx, msg, args...)
}

func failureReason(err error, fallback string) string {
	if msg := jobsapi.Message(err); msg != "" {
		return msg
	}
	return fallback
}
