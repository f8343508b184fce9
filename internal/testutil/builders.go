package testutil

import (
	"fmt"

	"github.com/leantech/jobboard/internal/domain/model"
)

// PostingBuilder provides a fluent interface for building job postings in tests.
type PostingBuilder struct {
	job model.JobPosting
}

// NewPosting starts a posting with the given id and a derived title.
func NewPosting(id string) *PostingBuilder {
	return &PostingBuilder{job: model.JobPosting{
		ID:    id,
		Title: "Position " + id,
	}}
}

// WithTitle sets the title.
func (b *PostingBuilder) WithTitle(title string) *PostingBuilder {
	b.job.Title = title
	return b
}

// WithDescription sets the description HTML.
func (b *PostingBuilder) WithDescription(html string) *PostingBuilder {
	b.job.Description = html
	return b
}

// WithClassification sets sector, work mode and country.
func (b *PostingBuilder) WithClassification(sector, workMode, country string) *PostingBuilder {
	b.job.Sector = sector
	b.job.WorkMode = workMode
	b.job.Country = country
	return b
}

// Build returns the posting.
func (b *PostingBuilder) Build() model.JobPosting {
	return b.job
}

// Collection wraps postings in a collection stamped with TestTime.
func Collection(jobs ...model.JobPosting) *model.JobCollection {
	if jobs == nil {
		jobs = []model.JobPosting{}
	}
	return &model.JobCollection{
		Jobs:        jobs,
		LastUpdated: TestTime().Format(model.LastUpdatedLayout),
	}
}

// Postings returns n simple postings with ids J1..Jn.
func Postings(n int) []model.JobPosting {
	out := make([]model.JobPosting, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewPosting(fmt.Sprintf("J%d", i)).Build())
	}
	return out
}
