package httpx

// CurrentPage constants identify the browser pages in templates and navigation.
const (
	PageJobs   = "jobs"
	PageDetail = "detail"
	PageAdmin  = "admin"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// HeaderPageSession carries the page session id on htmx requests.
const HeaderPageSession = "X-Page-Session"

const appName = "Job Board"

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageJobs:   "jobs-content",
	PageDetail: "detail-content",
	PageAdmin:  "admin-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to the listing for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "jobs-content"
}
