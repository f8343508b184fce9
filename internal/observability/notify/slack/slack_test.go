package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leantech/jobboard/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestFormatMessage(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#jobs",
		Username:   "bot",
		AdminURL:   "https://jobs.example.com/admin",
	})
	require.NoError(t, err)

	msg := client.formatMessage(notify.SyncFailurePayload{
		RunID:      "run-1",
		Trigger:    "schedule",
		Source:     "https://jobs.jobvite.com/leantechio/",
		Error:      "fetch listing: <503>",
		ErrorClass: "unavailable",
		OccurredAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Metadata:   map[string]string{"b": "2", "a": "1"},
	})

	assert.Equal(t, "bot", msg["username"])
	assert.Equal(t, "#jobs", msg["channel"])

	text, ok := msg["text"].(string)
	require.True(t, ok)
	for _, want := range []string{
		"*Job sync failed* `run-1` (schedule)",
		"Severity: critical",
		"Source: https://jobs.jobvite.com/leantechio/",
		"Error class: unavailable",
		"Error: fetch listing: &lt;503&gt;",
		"<https://jobs.example.com/admin|re-run sync>",
		"    • a: 1\n    • b: 2",
		"Timestamp: 2024-01-01T12:00:00Z",
	} {
		assert.Contains(t, text, want)
	}
}

func TestFormatMessage_Minimal(t *testing.T) {
	client, err := NewClient(Config{WebhookURL: "https://hooks.slack.com/services/test", AdminURL: "not a url"})
	require.NoError(t, err)

	msg := client.formatMessage(notify.SyncFailurePayload{Error: "boom"})
	assert.Equal(t, "jobboard", msg["username"])
	assert.NotContains(t, msg, "channel")
	text, _ := msg["text"].(string)
	assert.NotContains(t, text, "Admin")
	assert.NotContains(t, text, "Source")
}

func TestSendSyncFailure_Retries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if calls.Add(1) == 1 {
			http.Error(w, "rate_limited", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, RetryLimit: 1, Client: srv.Client()})
	require.NoError(t, err)

	require.NoError(t, client.SendSyncFailure(context.Background(), notify.SyncFailurePayload{Error: "boom"}))
	assert.Equal(t, int32(2), calls.Load())
}

func TestSendSyncFailure_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_token", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	err = client.SendSyncFailure(context.Background(), notify.SyncFailurePayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_token")
}
