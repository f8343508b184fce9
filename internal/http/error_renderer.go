package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/leantech/jobboard/internal/errors"
	"github.com/leantech/jobboard/internal/http/ui/viewmodel"
)

const internalErrorMessage = "internal server error"

// StatusFor maps an error to the HTTP status used by the JSON API.
// Plain context errors are treated like their AppError counterparts.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeCanceled:
		return statusClientClosedRequest
	case apperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// statusClientClosedRequest is the nginx convention for a request the client abandoned.
const statusClientClosedRequest = 499

// errorCodeFor returns the envelope "error" value for err.
func errorCodeFor(err error) string {
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	switch StatusFor(err) {
	case http.StatusGatewayTimeout:
		return string(apperrors.ErrCodeTimeout)
	case statusClientClosedRequest:
		return string(apperrors.ErrCodeCanceled)
	default:
		return string(apperrors.ErrCodeInternal)
	}
}

// publicMessage returns the AppError message without its cause. Errors that
// are not AppErrors never leak their text.
func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" && appErr.Code != apperrors.ErrCodeInternal {
		return appErr.Message
	}
	return internalErrorMessage
}

// WriteAppError writes the JSON envelope for err and logs server-side failures.
func WriteAppError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
			"status", status,
		)
	}
	WriteError(w, ErrorParams{
		Code:    status,
		ErrCode: errorCodeFor(err),
		Err:     errors.New(publicMessage(err)),
	})
}

// renderErrorPanel renders the recovery panel as an htmx fragment.
func (h *UIHandlers) renderErrorPanel(w http.ResponseWriter, r *http.Request, view viewmodel.ErrorView) {
	h.renderFragment(w, r, "error-panel", map[string]any{"ErrorView": view})
}
