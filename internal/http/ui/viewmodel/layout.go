package viewmodel

// Layout captures shared chrome metadata (titles, navigation state, page session).
type Layout struct {
	Title       string
	PageTitle   string
	CurrentPage string
	// PageSession is echoed back by htmx in the X-Page-Session header.
	PageSession string
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
