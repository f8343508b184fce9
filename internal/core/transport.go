package core

import (
	"context"

	"github.com/leantech/jobboard/internal/domain/model"
)

//go:generate mockgen -source=transport.go -destination=transport_mock_test.go -package=core

// JobTransport fetches the published collection from the jobs API.
type JobTransport interface {
	FetchAll(ctx context.Context) (*model.JobCollection, error)
}

// SyncTrigger asks the backend to start a resynchronization.
type SyncTrigger interface {
	TriggerSync(ctx context.Context) (*model.SyncResult, error)
}

// SyncStatusReader reports the most recent sync run.
type SyncStatusReader interface {
	SyncStatus(ctx context.Context) (*model.SyncStatus, error)
}
