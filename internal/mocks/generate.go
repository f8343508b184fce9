// Package mocks provides gomock implementations of the core ports for tests
// outside the core package.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	reader := mocks.NewMockJobReader(ctrl)
//	reader.EXPECT().GetJob(gomock.Any(), "J1").Return(core.Found(job))
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_reader_mock.go github.com/leantech/jobboard/internal/core JobReader

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=transport_mock.go github.com/leantech/jobboard/internal/core JobTransport,SyncTrigger,SyncStatusReader

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_repository_mock.go github.com/leantech/jobboard/internal/core JobRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_crawler_mock.go github.com/leantech/jobboard/internal/core JobCrawler

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/leantech/jobboard/internal/core CacheRepository
