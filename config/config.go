package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Redis configuration
//   - http.go: HTTP server configuration
//   - jobs.go: jobs API client, page session, crawler and sync configuration
//   - services.go: Service mode configuration
type AppConfig struct {
	// IsDev controls development mode behavior (templates read from disk).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Redis RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	// Services is a comma-delimited list of enabled services.
	// Valid values: ui, api, crawler
	Services string `env:"SERVICES" envDefault:"ui,api"`

	JobsAPI JobsAPIConfig `envPrefix:"JOBS_API_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Apply   ApplyConfig
	Crawler CrawlerConfig `envPrefix:"CRAWLER_"`
	Sync    SyncConfig    `envPrefix:"SYNC_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.JobsAPI.Sanitize()
	c.Session.Sanitize()
	c.Apply.Sanitize()
	c.Crawler.Sanitize()
	c.Sync.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

func (c *AppConfig) isEnabled(mode ServiceMode) bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[mode]
}

// IsUIEnabled returns true if the browser pages are served.
func (c *AppConfig) IsUIEnabled() bool { return c.isEnabled(ServiceModeUI) }

// IsAPIEnabled returns true if the jobs API is served.
func (c *AppConfig) IsAPIEnabled() bool { return c.isEnabled(ServiceModeAPI) }

// IsCrawlerEnabled returns true if the periodic crawler runs in this process.
func (c *AppConfig) IsCrawlerEnabled() bool { return c.isEnabled(ServiceModeCrawler) }

// IsHTTPServerEnabled reports whether any HTTP-facing service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	return c.IsUIEnabled() || c.IsAPIEnabled()
}

// NeedsRedis reports whether the enabled services touch the job store.
func (c *AppConfig) NeedsRedis() bool {
	return c.IsAPIEnabled() || c.IsCrawlerEnabled()
}
