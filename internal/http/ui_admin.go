package httpx

import (
	"net/http"

	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/jobsapi"
)

const (
	syncSucceededMessage = "Jobs synchronized successfully!"
	syncFailedMessage    = "Error synchronizing jobs. Please try again."
)

// AdminSync asks the jobs API to start a sync and reports the outcome.
func (h *UIHandlers) AdminSync(w http.ResponseWriter, r *http.Request) {
	kind, message, detail := "success", syncSucceededMessage, ""

	res, err := h.Sync.TriggerSync(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "trigger sync failed",
			"error", err,
			"status_code", jobsapi.StatusCode(err),
		)
		kind, message = "error", syncFailedMessage
	} else {
		detail = syncResultDetail(res)
	}

	if !WantsPartial(r) {
		data := NewTemplateData(r, adminMeta).
			WithFlash(kind, message).
			With("SyncDetail", detail).
			With("LastSync", h.lastSync(r)).
			Build()
		h.renderPage(w, r, data)
		return
	}

	triggerToast(w, message, kind)
	h.renderFragment(w, r, "sync-result", map[string]any{
		"Flash":      map[string]string{"Kind": kind, "Message": message},
		"SyncDetail": detail,
	})
}

// lastSync fetches the latest run for display. Failures only hide the panel.
func (h *UIHandlers) lastSync(r *http.Request) *model.SyncStatus {
	if h.SyncStatus == nil {
		return nil
	}
	status, err := h.SyncStatus.SyncStatus(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "load sync status failed", "error", err)
		return nil
	}
	return status
}

func syncResultDetail(res *model.SyncResult) string {
	if res == nil {
		return ""
	}
	if res.Message != "" {
		return res.Message
	}
	if res.Status == model.SyncAlreadyRunning {
		return "A sync was already running."
	}
	return ""
}
