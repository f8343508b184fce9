package httpx

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/mocks"
	"github.com/leantech/jobboard/internal/session"
)

// testUI bundles UI handlers with the mocks behind them.
type testUI struct {
	UI        *UIHandlers
	Transport *mocks.MockJobTransport
	Sync      *mocks.MockSyncTrigger
	Sessions  *session.Registry
}

// newTestUI wires UIHandlers against mocked jobs API ports and the real templates.
func newTestUI(t *testing.T) *testUI {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockJobTransport(ctrl)
	trigger := mocks.NewMockSyncTrigger(ctrl)
	reg := session.NewRegistry(session.RegistryOptions{Transport: transport, IdleTTL: time.Hour})
	t.Cleanup(reg.Close)

	return &testUI{
		UI: &UIHandlers{
			T:           tr,
			Sessions:    reg,
			Sync:        trigger,
			ApplyNumber: "5554991259084",
		},
		Transport: transport,
		Sync:      trigger,
		Sessions:  reg,
	}
}

// sampleJobs returns a two-posting collection used across handler tests.
func sampleJobs() *model.JobCollection {
	return &model.JobCollection{
		LastUpdated: "2024-03-01 10:00:00",
		Jobs: []model.JobPosting{
			{
				ID:          "oAbc1",
				Title:       "Backend Engineer",
				Description: "<p>Build <strong>APIs</strong></p>",
				Sector:      "Engineering",
				WorkMode:    "Remote",
				Country:     "Brazil",
			},
			{ID: "oXyz2", Title: "Data Analyst", Sector: "Data"},
		},
	}
}
