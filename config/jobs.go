package config

import (
	"strings"
	"time"
)

const (
	defaultJobsAPIBaseURL    = "http://localhost:8080"
	defaultApplyNumber       = "5554991259084"
	defaultCrawlerListingURL = "https://jobs.jobvite.com/leantechio/"
	defaultCrawlerUserAgent  = "jobboard-crawler/1.0"
)

// DefaultJobsAPITimeout bounds jobs API requests unless JOBS_API_TIMEOUT
// overrides it. A hung API then surfaces as a failure instead of an endless
// loading state.
const DefaultJobsAPITimeout = 15 * time.Second

// JobsAPIConfig configures the client the UI uses to reach the jobs API.
type JobsAPIConfig struct {
	// BaseURL is the address of the jobs API. The default points at the api
	// service of the same process.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Timeout bounds each request. An explicit zero leaves requests unbounded.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to jobs API client configuration values.
func (c *JobsAPIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultJobsAPIBaseURL
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
}

// SessionConfig controls the lifetime of server-side page sessions.
type SessionConfig struct {
	// IdleTTL is how long a page session survives without requests.
	IdleTTL time.Duration `env:"IDLE_TTL" envDefault:"30m"`

	// SweepInterval is how often idle sessions are evicted.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

// Sanitize applies guardrails to page session configuration values.
func (c *SessionConfig) Sanitize() {
	if c.IdleTTL < time.Minute {
		c.IdleTTL = time.Minute
	}
	if c.SweepInterval < time.Second {
		c.SweepInterval = time.Second
	}
	if c.SweepInterval > c.IdleTTL {
		c.SweepInterval = c.IdleTTL
	}
}

// ApplyConfig configures the "apply" deep link shown on job details.
type ApplyConfig struct {
	// WhatsAppNumber is the recipient of pre-filled application messages.
	WhatsAppNumber string `env:"APPLY_WHATSAPP_NUMBER" envDefault:"5554991259084"`
}

// Sanitize strips everything but digits from the configured number.
func (c *ApplyConfig) Sanitize() {
	var b strings.Builder
	for _, r := range c.WhatsAppNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	c.WhatsAppNumber = b.String()
	if c.WhatsAppNumber == "" {
		c.WhatsAppNumber = defaultApplyNumber
	}
}

// CrawlerConfig configures the Jobvite crawler and its schedule.
type CrawlerConfig struct {
	// ListingURL is the Jobvite career page listing all open positions.
	ListingURL string `env:"LISTING_URL" envDefault:"https://jobs.jobvite.com/leantechio/"`

	// Interval is the time between scheduled crawls.
	Interval time.Duration `env:"INTERVAL" envDefault:"6h"`

	// RatePerSecond limits outbound requests to the career site.
	RatePerSecond float64 `env:"RATE_PER_SECOND" envDefault:"2"`

	// Burst is the limiter bucket size.
	Burst int `env:"BURST" envDefault:"1"`

	// Concurrency is the number of detail pages fetched in parallel.
	Concurrency int `env:"CONCURRENCY" envDefault:"4"`

	// MaxListingPages caps how many "Show More" pages are followed.
	MaxListingPages int `env:"MAX_LISTING_PAGES" envDefault:"20"`

	// RequestTimeout bounds a single page fetch.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	UserAgent string `env:"USER_AGENT" envDefault:"jobboard-crawler/1.0"`
}

// Sanitize applies guardrails to crawler configuration values.
func (c *CrawlerConfig) Sanitize() {
	c.ListingURL = strings.TrimSpace(c.ListingURL)
	if c.ListingURL == "" {
		c.ListingURL = defaultCrawlerListingURL
	}
	if !strings.HasSuffix(c.ListingURL, "/") {
		c.ListingURL += "/"
	}
	if c.Interval < 5*time.Minute {
		c.Interval = 5 * time.Minute
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = 1
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.Concurrency > 16 {
		c.Concurrency = 16
	}
	if c.MaxListingPages < 1 {
		c.MaxListingPages = 1
	}
	if c.RequestTimeout < time.Second {
		c.RequestTimeout = time.Second
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = defaultCrawlerUserAgent
	}
}

// SyncConfig controls crawl-and-publish runs.
type SyncConfig struct {
	// LockTTL is how long a run holds the distributed sync lock.
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"15m"`

	// RunTimeout bounds a single run.
	RunTimeout time.Duration `env:"RUN_TIMEOUT" envDefault:"10m"`
}

// Sanitize applies guardrails to sync configuration values.
func (c *SyncConfig) Sanitize() {
	if c.RunTimeout < time.Minute {
		c.RunTimeout = time.Minute
	}
	if c.LockTTL < c.RunTimeout {
		c.LockTTL = c.RunTimeout
	}
}
