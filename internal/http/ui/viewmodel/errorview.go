package viewmodel

import (
	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/viewstate"
)

const (
	// DefaultBackURL is where the back action navigates when none is given.
	DefaultBackURL = "/"
	// DefaultBackText labels the back action.
	DefaultBackText = "Back to Jobs"

	listingFailureMessage = "Unable to load jobs. Please try again."
	detailFailureMessage  = "Unable to load job details. Please try again."
	missingIDMessage      = "Please choose a job from the list."
	notFoundTitle         = "Job not found"
	notFoundMessage       = "The requested job could not be found."
)

// ErrorView is the recovery panel shown in place of page content when a
// load fails. An empty RetryURL means a full reload of the current page.
type ErrorView struct {
	Title     string
	Message   string
	ShowRetry bool
	ShowBack  bool
	RetryURL  string
	BackURL   string
	BackText  string
}

// ErrorViewOption customizes an ErrorView.
type ErrorViewOption func(*ErrorView)

// WithoutRetry hides the retry action.
func WithoutRetry() ErrorViewOption {
	return func(v *ErrorView) { v.ShowRetry = false }
}

// WithoutBack hides the back action.
func WithoutBack() ErrorViewOption {
	return func(v *ErrorView) { v.ShowBack = false }
}

// WithRetryURL points the retry action at url instead of reloading.
func WithRetryURL(url string) ErrorViewOption {
	return func(v *ErrorView) { v.RetryURL = url }
}

// WithBack overrides the back destination and label. Empty values keep the defaults.
func WithBack(url, text string) ErrorViewOption {
	return func(v *ErrorView) {
		if url != "" {
			v.BackURL = url
		}
		if text != "" {
			v.BackText = text
		}
	}
}

// NewErrorView builds an ErrorView with both actions shown by default.
func NewErrorView(title, message string, opts ...ErrorViewOption) ErrorView {
	v := ErrorView{
		Title:     title,
		Message:   message,
		ShowRetry: true,
		ShowBack:  true,
		BackURL:   DefaultBackURL,
		BackText:  DefaultBackText,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&v)
		}
	}
	return v
}

// ListingError maps a failed listing state to its recovery panel.
// It returns false for any state that is not a failure.
func ListingError(state viewstate.State[*model.JobCollection]) (ErrorView, bool) {
	if !state.IsFailure() {
		return ErrorView{}, false
	}
	return NewErrorView("Error: "+state.Reason, listingFailureMessage), true
}

// DetailError maps a failed or not-found detail state to its recovery panel.
// A failure that cannot be retried is the missing id case.
func DetailError(state viewstate.State[model.JobPosting]) (ErrorView, bool) {
	switch {
	case state.IsNotFound():
		return NewErrorView(notFoundTitle, notFoundMessage, WithoutRetry()), true
	case state.IsFailure() && !state.Retryable:
		return NewErrorView("Error: "+state.Reason, missingIDMessage, WithoutRetry()), true
	case state.IsFailure():
		return NewErrorView("Error: "+state.Reason, detailFailureMessage), true
	default:
		return ErrorView{}, false
	}
}
