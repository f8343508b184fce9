// Package model defines the job board data types shared by the API, the
// crawler and the browser pages.
package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// LastUpdatedLayout is the timestamp layout written by the crawler into
// JobCollection.LastUpdated. Readers treat the value as opaque text.
const LastUpdatedLayout = "2006-01-02 15:04:05"

// JobPosting is a single job advertisement as published by the jobs API.
// Description holds trusted HTML produced by the crawler.
type JobPosting struct {
	ID          string `json:"jobviteId"      validate:"required"`
	Title       string `json:"jobTitle"       validate:"required"`
	Description string `json:"jobDescription"`
	Sector      string `json:"sector"`
	WorkMode    string `json:"workMode"`
	Country     string `json:"country"`
}

// Classification joins the non-empty classification attributes as
// "sector | workMode | country".
func (j JobPosting) Classification() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{j.Sector, j.WorkMode, j.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// JobCollection is the full set of postings plus a freshness timestamp.
type JobCollection struct {
	Jobs        []JobPosting `json:"jobs"        validate:"dive"`
	LastUpdated string       `json:"lastUpdated"`
}

// Len returns the number of postings; a nil collection has none.
func (c *JobCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Jobs)
}

// Find returns the first posting whose ID equals id exactly.
func (c *JobCollection) Find(id string) (JobPosting, bool) {
	if c == nil {
		return JobPosting{}, false
	}
	for _, job := range c.Jobs {
		if job.ID == id {
			return job, true
		}
	}
	return JobPosting{}, false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks that every posting carries an ID and a title and that IDs
// are unique within the collection.
func (c *JobCollection) Validate() error {
	if c == nil {
		return fmt.Errorf("job collection is nil")
	}
	if err := structValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid job collection: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Jobs))
	for i, job := range c.Jobs {
		if _, dup := seen[job.ID]; dup {
			return fmt.Errorf("invalid job collection: duplicate jobviteId %q at index %d", job.ID, i)
		}
		seen[job.ID] = struct{}{}
	}
	return nil
}
