package core

import "github.com/leantech/jobboard/internal/domain/model"

// LookupStatus discriminates the outcomes of JobCache.GetJob.
type LookupStatus int

const (
	// LookupOK means Job holds the matching posting.
	LookupOK LookupStatus = iota
	// LookupNotFound means the collection loaded but holds no such id.
	LookupNotFound
	// LookupMissingID means no id was supplied; no I/O happened.
	LookupMissingID
	// LookupError means the collection could not be loaded; see Err.
	LookupError
)

func (s LookupStatus) String() string {
	switch s {
	case LookupOK:
		return "ok"
	case LookupNotFound:
		return "not_found"
	case LookupMissingID:
		return "missing_id"
	case LookupError:
		return "error"
	default:
		return "unknown"
	}
}

// Lookup is the result of a by-id lookup. Not found and missing id are
// ordinary outcomes, not errors.
type Lookup struct {
	Status LookupStatus
	Job    model.JobPosting
	Err    error
}

// Found builds an OK lookup.
func Found(job model.JobPosting) Lookup { return Lookup{Status: LookupOK, Job: job} }

// NotFound builds a not-found lookup.
func NotFound() Lookup { return Lookup{Status: LookupNotFound} }

// MissingID builds a missing-id lookup.
func MissingID() Lookup { return Lookup{Status: LookupMissingID} }

// Failed builds an error lookup.
func Failed(err error) Lookup { return Lookup{Status: LookupError, Err: err} }
