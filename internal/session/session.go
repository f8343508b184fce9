// Package session keeps the server-side state of each open browser page: a
// job cache and the controllers for the listing and detail views.
package session

import (
	"sync"
	"time"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/viewstate"
)

// Page identifies which view a session is currently showing.
type Page string

const (
	PageListing Page = "listing"
	PageDetail  Page = "detail"
	PageAdmin   Page = "admin"
)

// Session is one page session. Cache is shared by both controllers so a
// visitor moving between listing and detail fetches the collection once.
type Session struct {
	ID      string
	Cache   *core.JobCache
	Listing *viewstate.ListingController
	Detail  *viewstate.DetailController

	mu       sync.Mutex
	page     Page
	lastSeen time.Time
	closed   bool
}

// Activate mounts the controller for page and unmounts the other one.
// The admin page mounts neither.
func (s *Session) Activate(page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.page = page
	switch page {
	case PageListing:
		s.Detail.Unmount()
		s.Listing.Mount()
	case PageDetail:
		s.Listing.Unmount()
		s.Detail.Mount()
	default:
		s.Listing.Unmount()
		s.Detail.Unmount()
	}
}

// Page returns the page most recently activated.
func (s *Session) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Closed reports whether the session was evicted.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// LastSeen returns the time of the most recent request.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.lastSeen = now
	return true
}

func (s *Session) idle(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) >= ttl
}

// close ends the session: both controllers drop late results and the cache
// aborts any fetch in flight.
func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.Listing.Unmount()
	s.Detail.Unmount()
	s.Cache.Close()
}
