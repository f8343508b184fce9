package jobsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leantech/jobboard/internal/domain/model"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c, &calls
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "localhost:8000"})
	require.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://localhost:8000/api/?x=1"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/jobs", c.endpoint("/jobs"))
}

func TestClient_FetchAll(t *testing.T) {
	c, calls := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[{"jobviteId":"J1","jobTitle":"Engineer","jobDescription":"<p>x</p>",` +
			`"sector":"Tech","workMode":"Remote","country":"Brazil"}],"lastUpdated":"2024-01-01 10:00:00"}`))
	}))

	got, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, &model.JobCollection{
		Jobs: []model.JobPosting{{
			ID: "J1", Title: "Engineer", Description: "<p>x</p>",
			Sector: "Tech", WorkMode: "Remote", Country: "Brazil",
		}},
		LastUpdated: "2024-01-01 10:00:00",
	}, got)
}

func TestClient_FetchOneEscapesID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"jobviteId":"a/b","jobTitle":"Slash"}`))
	}))

	got, err := c.FetchOne(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "Slash", got.Title)
}

func TestClient_TriggerSync(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sync", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"status":"started","runId":"r1"}`))
	}))

	got, err := c.TriggerSync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SyncStarted, got.Status)
	assert.Equal(t, "r1", got.RunID)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "plain 500", status: http.StatusInternalServerError, body: "boom", wantMsg: "request failed with status code 500"},
		{
			name:    "json envelope",
			status:  http.StatusNotFound,
			body:    `{"error":"not_found","message":"job not found"}`,
			wantMsg: "job not found",
		},
		{name: "empty message", status: http.StatusBadGateway, body: `{"message":"  "}`, wantMsg: "request failed with status code 502"},
		{name: "bad json on success", status: http.StatusOK, body: `{`, wantMsg: "invalid response from jobs API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.FetchAll(context.Background())
			require.Error(t, err)
			assert.Equal(t, int32(1), calls.Load(), "no retries")

			var te *Error
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantMsg, te.Message)
			assert.Equal(t, tt.status, te.StatusCode)
			assert.Equal(t, tt.wantMsg, Message(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base})
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	require.Error(t, err)

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.True(t, te.IsNetwork())
	assert.Equal(t, NetworkErrorMessage, te.Message)
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_ConfiguredTimeoutBoundsHungRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	_, err = c.FetchAll(context.WithoutCancel(context.Background()))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.True(t, te.IsNetwork())
	assert.Equal(t, NetworkErrorMessage, Message(err))
}

func TestMessage_NonTransportError(t *testing.T) {
	assert.Empty(t, Message(errors.New("other")))
	assert.Empty(t, Message(nil))
}
