package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/leantech/jobboard/internal/errors"
	"github.com/leantech/jobboard/internal/domain/model"
)

type fakeCatalog struct {
	jobs *model.JobCollection
	err  error
}

func (f *fakeCatalog) List(context.Context) (*model.JobCollection, error) {
	return f.jobs, f.err
}

func (f *fakeCatalog) Get(_ context.Context, id string) (*model.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	job, ok := f.jobs.Find(id)
	if !ok {
		return nil, apperrors.NotFoundf("job %q not found", id)
	}
	return &job, nil
}

type fakeSync struct {
	result *model.SyncResult
	status *model.SyncStatus
	err    error
}

func (f *fakeSync) Trigger(context.Context) (*model.SyncResult, error) { return f.result, f.err }
func (f *fakeSync) Status(context.Context) (*model.SyncStatus, error)  { return f.status, f.err }

func serveAPI(h *APIHandlers, method, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	registerAPIRoutes(mux, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestAPI_ListJobs(t *testing.T) {
	t.Parallel()

	h := &APIHandlers{Catalog: &fakeCatalog{jobs: sampleJobs()}}
	rec := serveAPI(h, http.MethodGet, "/jobs")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"lastUpdated": "2024-03-01 10:00:00",
		"jobs": [
			{"jobviteId":"oAbc1","jobTitle":"Backend Engineer","jobDescription":"<p>Build <strong>APIs</strong></p>","sector":"Engineering","workMode":"Remote","country":"Brazil"},
			{"jobviteId":"oXyz2","jobTitle":"Data Analyst","jobDescription":"","sector":"Data","workMode":"","country":""}
		]
	}`, rec.Body.String())
}

func TestAPI_GetJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		catalog  *fakeCatalog
		target   string
		wantCode int
		wantBody string
	}{
		{
			name:     "found",
			catalog:  &fakeCatalog{jobs: sampleJobs()},
			target:   "/jobs/oXyz2",
			wantCode: http.StatusOK,
			wantBody: `{"jobviteId":"oXyz2","jobTitle":"Data Analyst","jobDescription":"","sector":"Data","workMode":"","country":""}`,
		},
		{
			name:     "not found",
			catalog:  &fakeCatalog{jobs: sampleJobs()},
			target:   "/jobs/nope",
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"not_found","message":"job \"nope\" not found"}`,
		},
		{
			name:     "store unavailable",
			catalog:  &fakeCatalog{err: apperrors.Unavailable("job store unavailable")},
			target:   "/jobs/oAbc1",
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"error":"unavailable","message":"job store unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serveAPI(&APIHandlers{Catalog: tt.catalog}, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAPI_TriggerSync(t *testing.T) {
	t.Parallel()

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		sync     *fakeSync
		wantCode int
		wantBody string
	}{
		{
			name:     "started",
			sync:     &fakeSync{result: &model.SyncResult{Status: model.SyncStarted, RunID: "r-1", StartedAt: &started}},
			wantCode: http.StatusAccepted,
			wantBody: `{"status":"started","runId":"r-1","startedAt":"2024-03-01T10:00:00Z"}`,
		},
		{
			name:     "already running",
			sync:     &fakeSync{result: &model.SyncResult{Status: model.SyncAlreadyRunning, Message: "sync already in progress"}},
			wantCode: http.StatusOK,
			wantBody: `{"status":"already_running","message":"sync already in progress"}`,
		},
		{
			name:     "lock store down",
			sync:     &fakeSync{err: errors.New("dial tcp 127.0.0.1:6379: connection refused")},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal","message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &APIHandlers{Catalog: &fakeCatalog{}, Sync: tt.sync}
			rec := serveAPI(h, http.MethodPost, "/sync")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestAPI_SyncStatus(t *testing.T) {
	t.Parallel()

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	h := &APIHandlers{Catalog: &fakeCatalog{}, Sync: &fakeSync{status: &model.SyncStatus{
		RunID:     "r-1",
		State:     model.SyncStateRunning,
		Trigger:   "api",
		StartedAt: started,
	}}}

	rec := serveAPI(h, http.MethodGet, "/sync")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"runId":"r-1","state":"running","trigger":"api","startedAt":"2024-03-01T10:00:00Z","jobCount":0}`, rec.Body.String())
}

func TestAPI_SyncRoutesNeedController(t *testing.T) {
	t.Parallel()

	rec := serveAPI(&APIHandlers{Catalog: &fakeCatalog{}}, http.MethodPost, "/sync")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
