// Package errors derives low-cardinality class names from errors for metric
// tags and log fields.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"
)

// Classed is implemented by errors that know their own metric class.
type Classed interface {
	ErrorClass() string
}

// Classify returns a normalized error class suitable for tagging metrics.
// Context errors map to "canceled" and "timeout". Errors implementing
// Classed anywhere in the chain win over the innermost concrete type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	var classed Classed
	if goerrors.As(err, &classed) {
		if class := strings.TrimSpace(classed.ErrorClass()); class != "" {
			return class
		}
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
