package httpx

import (
	"errors"
	"net/http"

	"github.com/leantech/jobboard/internal/http/ui/viewmodel"
)

// NotFound renders an HTML 404 for browsers and the JSON envelope otherwise.
// It works without templates, so API-only deployments can use it too.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if h != nil && h.T != nil && IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
		return
	}
	renderAPINotFound(w, r)
}

func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":   "Page Not Found - " + appName,
		"AppName": appName,
		"Code":    "404",
		"ErrorView": viewmodel.NewErrorView(
			"Page not found",
			"The page you're looking for doesn't exist.",
			viewmodel.WithoutRetry(),
		),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err)
	}
}

func renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}
