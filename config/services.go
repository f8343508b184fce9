package config

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeUI serves the browser pages and their HTMX fragments.
	ServiceModeUI ServiceMode = "ui"
	// ServiceModeAPI serves the jobs API (/jobs, /jobs/{id}, /sync).
	ServiceModeAPI ServiceMode = "api"
	// ServiceModeCrawler runs the periodic crawl-and-publish loop.
	ServiceModeCrawler ServiceMode = "crawler"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeUI,
		ServiceModeAPI,
		ServiceModeCrawler,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	for _, part := range strings.Split(servicesStr, ",") {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeUI, ServiceModeAPI, ServiceModeCrawler:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: ui, api, crawler)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}
