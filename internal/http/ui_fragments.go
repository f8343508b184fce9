package httpx

import (
	"net/http"

	"github.com/leantech/jobboard/internal/http/ui/viewmodel"
	"github.com/leantech/jobboard/internal/session"
)

// RequirePageSession resolves the X-Page-Session header for fragment routes.
// Unknown or expired sessions get HX-Refresh so the browser starts over with
// a full page load.
func RequirePageSession(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := reg.Lookup(PageSessionHeader(r))
			if !ok {
				if !IsHTMX(r) {
					http.Redirect(w, r, fullPageURL(r), http.StatusSeeOther)
					return
				}
				HTMX(w).Refresh()
				return
			}
			next.ServeHTTP(w, r.WithContext(SetPageSessionInContext(r.Context(), s)))
		})
	}
}

// fullPageURL maps a fragment URL to the page that hosts it.
func fullPageURL(r *http.Request) string {
	target := "/"
	if r.URL.Path == "/fragments/detail" {
		target = "/detail"
	}
	if q := r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	return target
}

// stale answers a fragment whose result was not applied. A closed session
// reloads the page; a superseded cycle leaves the newer content alone.
func stale(w http.ResponseWriter, s *session.Session) {
	if s.Closed() {
		HTMX(w).Refresh()
		return
	}
	HTMX(w).NoContent()
}

// JobsFragment runs the listing controller and renders its state.
func (h *UIHandlers) JobsFragment(w http.ResponseWriter, r *http.Request) {
	s, ok := GetPageSessionFromContext(r.Context())
	if !ok {
		HTMX(w).Refresh()
		return
	}
	s.Activate(session.PageListing)

	out := s.Listing.Load(r.Context())
	if !out.Applied {
		stale(w, s)
		return
	}
	if view, failed := viewmodel.ListingError(out.State); failed {
		h.renderErrorPanel(w, r, view)
		return
	}
	h.renderFragment(w, r, "job-list", map[string]any{
		"List": viewmodel.NewJobList(out.State.Data),
	})
}

// DetailFragment runs the detail controller for ?id= and renders its state.
func (h *UIHandlers) DetailFragment(w http.ResponseWriter, r *http.Request) {
	s, ok := GetPageSessionFromContext(r.Context())
	if !ok {
		HTMX(w).Refresh()
		return
	}
	s.Activate(session.PageDetail)

	out := s.Detail.Navigate(r.Context(), r.URL.Query().Get("id"))
	if !out.Applied {
		stale(w, s)
		return
	}
	if view, failed := viewmodel.DetailError(out.State); failed {
		h.renderErrorPanel(w, r, view)
		return
	}
	h.renderFragment(w, r, "job-detail", map[string]any{
		"Job": viewmodel.NewJobDetail(out.State.Data, h.ApplyNumber),
	})
}
