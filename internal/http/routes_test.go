package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/leantech/jobboard/internal/mocks"
	"github.com/leantech/jobboard/internal/session"
)

// chdirRoot runs the test from the module root so disk templates resolve.
func chdirRoot(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("templates not available: %v", err)
	}
	t.Chdir("../..")
}

func TestNewRouter_APIOnly(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterServices{
		Catalog: &fakeCatalog{jobs: sampleJobs()},
		Sync:    &fakeSync{},
	})

	tests := []struct {
		name     string
		method   string
		target   string
		accept   string
		wantCode int
		wantCT   string
	}{
		{name: "list", method: http.MethodGet, target: "/jobs", wantCode: http.StatusOK, wantCT: "application/json"},
		{name: "health", method: http.MethodGet, target: "/healthz", wantCode: http.StatusOK, wantCT: "application/json"},
		{name: "job not found keeps envelope", method: http.MethodGet, target: "/jobs/nope", accept: "text/html", wantCode: http.StatusNotFound, wantCT: "application/json"},
		{name: "unknown route without UI", method: http.MethodGet, target: "/nowhere", accept: "text/html", wantCode: http.StatusNotFound, wantCT: "application/json"},
		{name: "ui not registered", method: http.MethodGet, target: "/admin", wantCode: http.StatusNotFound, wantCT: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCT, rec.Header().Get("Content-Type"))
		})
	}
}

func TestNewRouter_HealthCheckFailure(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterServices{
		Health: func(context.Context) error { return errors.New("redis down") },
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

func TestNewRouter_UI(t *testing.T) {
	chdirRoot(t)

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockJobTransport(ctrl)
	transport.EXPECT().FetchAll(gomock.Any()).Return(sampleJobs(), nil).Times(1)
	reg := session.NewRegistry(session.RegistryOptions{Transport: transport, IdleTTL: time.Hour})
	t.Cleanup(reg.Close)

	router := NewRouter(RouterServices{
		Sessions:    reg,
		SyncTrigger: mocks.NewMockSyncTrigger(ctrl),
		ApplyNumber: "5554991259084",
		IsDev:       true,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, reg.Len())
	assert.Contains(t, rec.Body.String(), `hx-get="/fragments/jobs"`)

	sessionID := extractSessionID(t, rec.Body.String())

	req := htmxRequest(http.MethodGet, "/fragments/jobs", sessionID)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	req.Header.Set("Accept", "text/html")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Page not found")
}

//nolint:gochecknoglobals // test-only pattern
var sessionHeaderPattern = regexp.MustCompile(`X-Page-Session(?:&#34;|")\s*:\s*(?:&#34;|")([0-9a-f-]{36})`)

// extractSessionID reads the page session id from the rendered hx-headers.
func extractSessionID(t *testing.T, body string) string {
	t.Helper()
	m := sessionHeaderPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "page session header not rendered")
	return m[1]
}
