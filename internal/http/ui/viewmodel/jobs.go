package viewmodel

import (
	"html/template"
	"net/url"

	"github.com/leantech/jobboard/internal/domain/model"
)

// JobCard is one entry in the listing.
type JobCard struct {
	ID             string
	Title          string
	Classification string
	DetailURL      string
}

// JobList is the listing page body.
type JobList struct {
	Cards       []JobCard
	Total       int
	LastUpdated string
}

// Empty reports whether the listing has no postings.
func (l JobList) Empty() bool { return len(l.Cards) == 0 }

// DetailURL returns the detail page link for id.
func DetailURL(id string) string {
	return "/detail?id=" + url.QueryEscape(id)
}

// NewJobList converts a collection into listing cards, preserving order.
func NewJobList(c *model.JobCollection) JobList {
	list := JobList{Total: c.Len()}
	if c == nil {
		return list
	}
	list.LastUpdated = c.LastUpdated
	list.Cards = make([]JobCard, 0, len(c.Jobs))
	for _, job := range c.Jobs {
		list.Cards = append(list.Cards, JobCard{
			ID:             job.ID,
			Title:          job.Title,
			Classification: job.Classification(),
			DetailURL:      DetailURL(job.ID),
		})
	}
	return list
}

// JobDetail is the detail page body. Description is the crawler-produced
// HTML and is rendered verbatim.
type JobDetail struct {
	ID             string
	Title          string
	Classification string
	Description    template.HTML
	ApplyURL       string
	BackURL        string
	BackText       string
}

// NewJobDetail builds the detail body with an apply link for whatsAppNumber.
func NewJobDetail(job model.JobPosting, whatsAppNumber string) JobDetail {
	return JobDetail{
		ID:             job.ID,
		Title:          job.Title,
		Classification: job.Classification(),
		Description:    template.HTML(job.Description), //nolint:gosec // published by our own crawler
		ApplyURL:       model.ApplyLink(whatsAppNumber, job),
		BackURL:        DefaultBackURL,
		BackText:       DefaultBackText,
	}
}
