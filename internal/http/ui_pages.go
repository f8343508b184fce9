package httpx

import (
	"net/http"
	"net/url"

	"github.com/leantech/jobboard/internal/session"
)

//nolint:gochecknoglobals // static page metadata
var (
	jobsMeta   = PageMeta{Title: "Jobs - " + appName, PageTitle: "Open Positions", CurrentPage: PageJobs}
	detailMeta = PageMeta{Title: "Job Details - " + appName, PageTitle: "Job Details", CurrentPage: PageDetail}
	adminMeta  = PageMeta{Title: "Admin - " + appName, PageTitle: "Admin", CurrentPage: PageAdmin}
)

// pageSession resolves the page session for a page request. A full load
// always starts a new session. htmx navigation keeps the caller's session;
// if it has expired the browser is told to reload and ok is false.
func (h *UIHandlers) pageSession(w http.ResponseWriter, r *http.Request, page session.Page) (*http.Request, bool) {
	if WantsPartial(r) {
		s, found := h.Sessions.Lookup(PageSessionHeader(r))
		if !found {
			HTMX(w).Refresh()
			return r, false
		}
		s.Activate(page)
		return r.WithContext(SetPageSessionInContext(r.Context(), s)), true
	}

	s := h.Sessions.Create(page)
	h.logger().DebugContext(r.Context(), "page session created", "session", s.ID, "page", string(page))
	return r.WithContext(SetPageSessionInContext(r.Context(), s)), true
}

// JobsPage renders the listing shell; the list itself loads from /fragments/jobs.
func (h *UIHandlers) JobsPage(w http.ResponseWriter, r *http.Request) {
	r, ok := h.pageSession(w, r, session.PageListing)
	if !ok {
		return
	}
	data := NewTemplateData(r, jobsMeta).
		With("FragmentURL", "/fragments/jobs").
		Build()
	h.renderPage(w, r, data)
}

// DetailPage renders the detail shell for ?id=.
func (h *UIHandlers) DetailPage(w http.ResponseWriter, r *http.Request) {
	r, ok := h.pageSession(w, r, session.PageDetail)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	data := NewTemplateData(r, detailMeta).
		With("JobID", id).
		With("FragmentURL", detailFragmentURL(id)).
		Build()
	h.renderPage(w, r, data)
}

// AdminPage renders the sync panel.
func (h *UIHandlers) AdminPage(w http.ResponseWriter, r *http.Request) {
	r, ok := h.pageSession(w, r, session.PageAdmin)
	if !ok {
		return
	}
	data := NewTemplateData(r, adminMeta).
		With("LastSync", h.lastSync(r)).
		Build()
	h.renderPage(w, r, data)
}

func detailFragmentURL(id string) string {
	if id == "" {
		return "/fragments/detail"
	}
	return "/fragments/detail?id=" + url.QueryEscape(id)
}
