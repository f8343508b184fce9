// Package viewstate drives the per-page loading, success, failure and not
// found state machines that sit between the job cache and the templates.
package viewstate

// Kind discriminates a State.
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindFailure
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// State is a tagged union over Loading, Success(Data), Failure(Reason) and
// NotFound. Retryable is only meaningful for failures.
type State[T any] struct {
	Kind      Kind
	Data      T
	Reason    string
	Retryable bool
}

// Loading returns the initial state.
func Loading[T any]() State[T] { return State[T]{Kind: KindLoading} }

// Success wraps a loaded value.
func Success[T any](v T) State[T] { return State[T]{Kind: KindSuccess, Data: v} }

// Failure records a visitor-facing reason.
func Failure[T any](reason string, retryable bool) State[T] {
	return State[T]{Kind: KindFailure, Reason: reason, Retryable: retryable}
}

// NotFound is the terminal state for a valid miss.
func NotFound[T any]() State[T] { return State[T]{Kind: KindNotFound} }

func (s State[T]) IsLoading() bool  { return s.Kind == KindLoading }
func (s State[T]) IsSuccess() bool  { return s.Kind == KindSuccess }
func (s State[T]) IsFailure() bool  { return s.Kind == KindFailure }
func (s State[T]) IsNotFound() bool { return s.Kind == KindNotFound }
