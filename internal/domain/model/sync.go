package model

import "time"

// SyncResultStatus describes the outcome of a sync trigger request.
type SyncResultStatus string

const (
	// SyncStarted means a new crawl-and-publish run was launched.
	SyncStarted SyncResultStatus = "started"
	// SyncAlreadyRunning means another run holds the sync lock.
	SyncAlreadyRunning SyncResultStatus = "already_running"
)

// SyncResult is returned by POST /sync. Clients log it without interpreting it.
type SyncResult struct {
	Status    SyncResultStatus `json:"status"`
	RunID     string           `json:"runId,omitempty"`
	StartedAt *time.Time       `json:"startedAt,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// SyncState is the lifecycle state of a sync run.
type SyncState string

const (
	SyncStateRunning   SyncState = "running"
	SyncStateSucceeded SyncState = "succeeded"
	SyncStateFailed    SyncState = "failed"
)

// SyncStatus records the most recent sync run.
type SyncStatus struct {
	RunID      string     `json:"runId"`
	State      SyncState  `json:"state"`
	Trigger    string     `json:"trigger,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	JobCount   int        `json:"jobCount"`
	Error      string     `json:"error,omitempty"`
}

// Duration returns how long the run took, or zero while it is running.
func (s *SyncStatus) Duration() time.Duration {
	if s == nil || s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
