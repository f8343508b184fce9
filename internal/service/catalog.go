package service

import (
	"context"
	"log/slog"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/domain/model"
	apperrors "github.com/leantech/jobboard/internal/errors"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Repo   core.JobRepository // Required
	Logger *slog.Logger       // Optional
}

// CatalogService serves the published job collection to the jobs API.
type CatalogService struct {
	repo   core.JobRepository
	logger *slog.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	if opts.Repo == nil {
		panic("service.NewCatalogService: Repo is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: opts.Repo, logger: logger.With("component", "catalog_service")}
}

// List returns the published collection. Before the first publish it
// returns an empty collection rather than an error.
func (s *CatalogService) List(ctx context.Context) (*model.JobCollection, error) {
	jobs, err := s.repo.Collection(ctx)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		return &model.JobCollection{Jobs: []model.JobPosting{}}, nil
	}
	return jobs, nil
}

// Get returns the posting whose id matches exactly.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.JobPosting, error) {
	if id == "" {
		return nil, apperrors.ValidationField("id", "Job ID is required.")
	}
	jobs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	job, ok := jobs.Find(id)
	if !ok {
		return nil, apperrors.NotFoundf("Job %q not found.", id)
	}
	return &job, nil
}
