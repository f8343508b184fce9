// Package core provides the template helpers shared by every page.
package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":    deps.ContentTemplateFor,
		"friendlyTime":   friendlyTime,
		"relativeTime":   relativeTime,
		"timeTag":        timeTag,
		"truncateText":   TruncateText,
		"syncStateClass": syncStateClass,
		"syncStateLabel": syncStateLabel,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template execution, already escaped
		return template.HTML(buf.String()), nil
	}

	// toJSON is used for hx-headers and hx-vals attributes.
	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func asTime(ts any) (time.Time, bool) {
	switch v := ts.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	default:
		return time.Time{}, false
	}
}

func friendlyTime(ts any) string {
	t0, ok := asTime(ts)
	if !ok {
		return ""
	}
	return uiutil.FormatFriendlyDateTime(t0)
}

func relativeTime(ts any) string {
	t0, ok := asTime(ts)
	if !ok {
		return ""
	}
	return uiutil.FriendlyRelativeTime(t0)
}

func timeTag(ts any) template.HTML {
	t0, ok := asTime(ts)
	if !ok {
		return ""
	}
	// #nosec G203 - built from escaped values only
	return template.HTML(fmt.Sprintf(
		"<time datetime=\"%s\" title=\"%s\">%s</time>",
		t0.UTC().Format(time.RFC3339),
		template.HTMLEscapeString(t0.Local().Format(time.RFC1123)),
		template.HTMLEscapeString(uiutil.FormatFriendlyDateTime(t0)),
	))
}

func syncStateClass(state model.SyncState) string {
	switch state {
	case model.SyncStateSucceeded:
		return "badge-success"
	case model.SyncStateFailed:
		return "badge-danger"
	case model.SyncStateRunning:
		return "badge-info"
	default:
		return "badge-light"
	}
}

func syncStateLabel(state model.SyncState) string {
	s := strings.ReplaceAll(string(state), "_", " ")
	if s == "" {
		return "unknown"
	}
	return s
}

// TruncateText truncates a string to a maximum number of runes (not bytes),
// adding an ellipsis when truncated.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, maxLen)
}
