package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/jobsapi"
	"github.com/leantech/jobboard/internal/session"
)

func htmxRequest(method, target, sessionID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("HX-Request", "true")
	if sessionID != "" {
		req.Header.Set(HeaderPageSession, sessionID)
	}
	return req
}

// serveFragment runs a fragment handler behind RequirePageSession.
func serveFragment(tu *testUI, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	RequirePageSession(tu.Sessions)(h).ServeHTTP(rec, req)
	return rec
}

func TestJobsPage_FullLoadCreatesSession(t *testing.T) {
	tu := newTestUI(t)

	rec := httptest.NewRecorder()
	tu.UI.JobsPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, tu.Sessions.Len())
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"<title>Jobs - Job Board</title>",
		"Open Positions",
		`hx-get="/fragments/jobs"`,
		HeaderPageSession,
		"Loading jobs...",
	}), body)
}

func TestJobsPage_FullLoadsGetDistinctSessions(t *testing.T) {
	tu := newTestUI(t)

	for range 2 {
		rec := httptest.NewRecorder()
		tu.UI.JobsPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, tu.Sessions.Len())
}

func TestDetailPage_HTMXNavigationKeepsSession(t *testing.T) {
	tu := newTestUI(t)
	s := tu.Sessions.Create(session.PageListing)

	rec := httptest.NewRecorder()
	tu.UI.DetailPage(rec, htmxRequest(http.MethodGet, "/detail?id=o%2FAbc", s.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, tu.Sessions.Len())
	assert.Equal(t, session.PageDetail, s.Page())
	body := rec.Body.String()
	assert.Contains(t, body, `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">Job Details</h1>`)
	assert.Contains(t, body, `hx-get="/fragments/detail?id=o%2FAbc"`)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "nav:activate")
}

func TestPage_HTMXNavigationWithExpiredSessionRefreshes(t *testing.T) {
	tu := newTestUI(t)

	rec := httptest.NewRecorder()
	tu.UI.AdminPage(rec, htmxRequest(http.MethodGet, "/admin", "gone"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("Hx-Refresh"))
	assert.Zero(t, tu.Sessions.Len())
}

func TestJobsFragment_RendersListing(t *testing.T) {
	tu := newTestUI(t)
	tu.Transport.EXPECT().FetchAll(gomock.Any()).Return(sampleJobs(), nil).Times(1)
	s := tu.Sessions.Create(session.PageListing)

	rec := serveFragment(tu, tu.UI.JobsFragment, htmxRequest(http.MethodGet, "/fragments/jobs", s.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"Backend Engineer",
		"Engineering | Remote | Brazil",
		`href="/detail?id=oAbc1"`,
		"Data Analyst",
		"Total jobs: 2",
		"Last updated: 2024-03-01 10:00:00",
	}), body)
	assert.Less(t, strings.Index(body, "Backend Engineer"), strings.Index(body, "Data Analyst"))
}

func TestJobsFragment_Failure(t *testing.T) {
	tu := newTestUI(t)
	tu.Transport.EXPECT().FetchAll(gomock.Any()).
		Return(nil, &jobsapi.Error{Op: "fetch all", StatusCode: 500, Message: "request failed with status code 500"})
	s := tu.Sessions.Create(session.PageListing)

	rec := serveFragment(tu, tu.UI.JobsFragment, htmxRequest(http.MethodGet, "/fragments/jobs", s.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, ContainsAll(body, []string{
		"Error: request failed with status code 500",
		"Unable to load jobs. Please try again.",
		"window.location.reload()",
		"Back to Jobs",
	}), body)
}

func TestJobsFragment_Empty(t *testing.T) {
	tu := newTestUI(t)
	tu.Transport.EXPECT().FetchAll(gomock.Any()).Return(&model.JobCollection{}, nil)
	s := tu.Sessions.Create(session.PageListing)

	rec := serveFragment(tu, tu.UI.JobsFragment, htmxRequest(http.MethodGet, "/fragments/jobs", s.ID))

	assert.Contains(t, rec.Body.String(), "No jobs available at the moment.")
	assert.Contains(t, rec.Body.String(), "Total jobs: 0")
}

func TestDetailFragment(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		fetch   bool
		fetchOK bool
		want    []string
		absent  []string
	}{
		{
			name:    "found",
			target:  "/fragments/detail?id=oAbc1",
			fetch:   true,
			fetchOK: true,
			want: []string{
				"Backend Engineer",
				"Job ID: oAbc1",
				"Engineering | Remote | Brazil",
				"<p>Build <strong>APIs</strong></p>",
				"Apply for this Job",
				"https://wa.me/5554991259084?text=",
				"Back to Jobs",
			},
		},
		{
			name:    "not found",
			target:  "/fragments/detail?id=missing",
			fetch:   true,
			fetchOK: true,
			want:    []string{"Job not found", "The requested job could not be found.", "Back to Jobs"},
			absent:  []string{"Try Again"},
		},
		{
			name:   "missing id",
			target: "/fragments/detail",
			want:   []string{"Error: No job ID provided", "Please choose a job from the list."},
			absent: []string{"Try Again"},
		},
		{
			name:   "transport failure",
			target: "/fragments/detail?id=oAbc1",
			fetch:  true,
			want:   []string{"Error: network error", "Unable to load job details. Please try again.", "Try Again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := newTestUI(t)
			if tt.fetch {
				call := tu.Transport.EXPECT().FetchAll(gomock.Any())
				if tt.fetchOK {
					call.Return(sampleJobs(), nil)
				} else {
					call.Return(nil, &jobsapi.Error{Op: "fetch all", Message: jobsapi.NetworkErrorMessage, Err: errors.New("refused")})
				}
			}
			s := tu.Sessions.Create(session.PageDetail)

			rec := serveFragment(tu, tu.UI.DetailFragment, htmxRequest(http.MethodGet, tt.target, s.ID))

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.True(t, ContainsAll(body, tt.want), body)
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestDetailFragment_SharesListingCache(t *testing.T) {
	tu := newTestUI(t)
	tu.Transport.EXPECT().FetchAll(gomock.Any()).Return(sampleJobs(), nil).Times(1)
	s := tu.Sessions.Create(session.PageListing)

	rec := serveFragment(tu, tu.UI.JobsFragment, htmxRequest(http.MethodGet, "/fragments/jobs", s.ID))
	require.Contains(t, rec.Body.String(), "Data Analyst")

	rec = httptest.NewRecorder()
	tu.UI.DetailPage(rec, htmxRequest(http.MethodGet, "/detail?id=oXyz2", s.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serveFragment(tu, tu.UI.DetailFragment, htmxRequest(http.MethodGet, "/fragments/detail?id=oXyz2", s.ID))
	assert.Contains(t, rec.Body.String(), "Job ID: oXyz2")
}

func TestDetailFragment_SupersededRequestLeavesNewerContent(t *testing.T) {
	tu := newTestUI(t)
	fetching := make(chan struct{})
	release := make(chan struct{})
	tu.Transport.EXPECT().FetchAll(gomock.Any()).
		DoAndReturn(func(context.Context) (*model.JobCollection, error) {
			close(fetching)
			<-release
			return sampleJobs(), nil
		}).Times(1)
	s := tu.Sessions.Create(session.PageDetail)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- serveFragment(tu, tu.UI.DetailFragment, htmxRequest(http.MethodGet, "/fragments/detail?id=oAbc1", s.ID))
	}()
	select {
	case <-fetching:
	case <-time.After(2 * time.Second):
		t.Fatal("first fragment never reached the jobs API")
	}

	second := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		second <- serveFragment(tu, tu.UI.DetailFragment, htmxRequest(http.MethodGet, "/fragments/detail?id=oXyz2", s.ID))
	}()

	var rec *httptest.ResponseRecorder
	select {
	case rec = <-first:
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("first fragment was not superseded")
	}
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Hx-Refresh"))
	assert.Empty(t, rec.Body.String())

	close(release)
	select {
	case rec = <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second fragment never rendered")
	}
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job ID: oXyz2")
	assert.NotContains(t, rec.Body.String(), "Job ID: oAbc1")

	state := s.Detail.State()
	require.True(t, state.IsSuccess())
	assert.Equal(t, "oXyz2", state.Data.ID)
	assert.Equal(t, "oXyz2", s.Detail.ID())
}

func TestRequirePageSession(t *testing.T) {
	tu := newTestUI(t)
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	t.Run("htmx refresh", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequirePageSession(tu.Sessions)(next).ServeHTTP(rec, htmxRequest(http.MethodGet, "/fragments/jobs", "unknown"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("Hx-Refresh"))
	})

	t.Run("direct visit redirects to page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequirePageSession(tu.Sessions)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragments/detail?id=oAbc1", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/detail?id=oAbc1", rec.Header().Get("Location"))
	})

	assert.False(t, called)
}

func TestFragment_ClosedSessionRefreshes(t *testing.T) {
	tu := newTestUI(t)
	s := tu.Sessions.Create(session.PageListing)
	req := htmxRequest(http.MethodGet, "/fragments/jobs", s.ID)
	req = req.WithContext(SetPageSessionInContext(req.Context(), s))
	tu.Sessions.Close()

	rec := httptest.NewRecorder()
	tu.UI.JobsFragment(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("Hx-Refresh"))
}
