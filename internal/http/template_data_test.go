package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leantech/jobboard/internal/session"
)

func TestNewTemplateData(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data := NewTemplateData(r, jobsMeta).Build()

	assert.Equal(t, "Jobs - Job Board", data["Title"])
	assert.Equal(t, "Open Positions", data["PageTitle"])
	assert.Equal(t, PageJobs, data["CurrentPage"])
	assert.Equal(t, "Job Board", data["AppName"])
	assert.NotContains(t, data, "PageSession")
	assert.NotContains(t, data, "PageHeaders")
}

func TestNewTemplateData_PageSession(t *testing.T) {
	t.Parallel()

	s := &session.Session{ID: "sess-1"}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(SetPageSessionInContext(r.Context(), s))

	data := NewTemplateData(r, detailMeta).Build()
	assert.Equal(t, "sess-1", data["PageSession"])
	assert.Equal(t, map[string]string{HeaderPageSession: "sess-1"}, data["PageHeaders"])
}

func TestTemplateDataBuilder_WithFlash(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)

	data := NewTemplateData(r, adminMeta).
		WithFlash("success", "Jobs synchronized successfully!").
		With("SyncDetail", "run r-1").
		Build()
	assert.Equal(t, map[string]string{"Kind": "success", "Message": "Jobs synchronized successfully!"}, data["Flash"])
	assert.Equal(t, "run r-1", data["SyncDetail"])

	empty := NewTemplateData(r, adminMeta).WithFlash("error", "").Build()
	assert.NotContains(t, empty, "Flash")
}
