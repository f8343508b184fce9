package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/leantech/jobboard/internal/domain/model"
)

// CatalogReader serves published postings.
type CatalogReader interface {
	List(ctx context.Context) (*model.JobCollection, error)
	Get(ctx context.Context, id string) (*model.JobPosting, error)
}

// SyncController starts and reports crawl-and-publish runs.
type SyncController interface {
	Trigger(ctx context.Context) (*model.SyncResult, error)
	Status(ctx context.Context) (*model.SyncStatus, error)
}

// APIHandlers implements the jobs API consumed by the browser pages and the
// admin CLI.
type APIHandlers struct {
	Catalog CatalogReader
	Sync    SyncController
	Logger  *slog.Logger
}

func (h *APIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// ListJobs handles GET /jobs.
func (h *APIHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Catalog.List(r.Context())
	if err != nil {
		WriteAppError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// GetJob handles GET /jobs/{id}.
func (h *APIHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// TriggerSync handles POST /sync. A newly started run answers 202; a run
// already holding the lock answers 200.
func (h *APIHandlers) TriggerSync(w http.ResponseWriter, r *http.Request) {
	res, err := h.Sync.Trigger(r.Context())
	if err != nil {
		WriteAppError(w, r, h.logger(), err)
		return
	}
	code := http.StatusAccepted
	if res.Status == model.SyncAlreadyRunning {
		code = http.StatusOK
	}
	WriteJSON(w, code, res)
}

// SyncStatus handles GET /sync.
func (h *APIHandlers) SyncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Sync.Status(r.Context())
	if err != nil {
		WriteAppError(w, r, h.logger(), err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}
