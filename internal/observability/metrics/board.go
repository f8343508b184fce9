// Package metrics standardises the metric names and tags emitted by the job
// board.
package metrics

import (
	"time"

	obserrors "github.com/leantech/jobboard/internal/observability/errors"
	"github.com/leantech/jobboard/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// Metric names.
const (
	CacheFetchCount    = "jobs.cache.fetch"
	CacheFetchDuration = "jobs.cache.fetch.duration"
	SyncRunCount       = "jobs.sync.run"
	SyncRunDuration    = "jobs.sync.run.duration"
	PublishedJobs      = "jobs.published"
	CrawlPages         = "jobs.crawl.pages"
	CrawlPostings      = "jobs.crawl.postings"
	CrawlDetailErrors  = "jobs.crawl.detail_errors"
	SessionsActive     = "jobs.sessions.active"
	SessionsEvicted    = "jobs.sessions.evicted"
)

// CacheFetch describes one network fetch performed by a job cache.
type CacheFetch struct {
	Result   string
	Jobs     int
	Duration time.Duration
	Err      error
}

// EmitCacheFetch records a job cache fetch.
func EmitCacheFetch(sink statsd.Sink, in CacheFetch) {
	if sink == nil {
		return
	}
	tags := withErrorClass(map[string]string{"result": in.Result}, in.Result, in.Err)
	sink.Count(CacheFetchCount, 1, tags)
	if in.Duration > 0 {
		sink.Timing(CacheFetchDuration, in.Duration, CloneTags(tags))
	}
}

// SyncRun describes a finished crawl-and-publish run.
type SyncRun struct {
	Trigger  string
	Result   string
	Jobs     int
	Duration time.Duration
	Err      error
}

// EmitSyncRun records a sync run and, on success, the published job count.
func EmitSyncRun(sink statsd.Sink, in SyncRun) {
	if sink == nil {
		return
	}
	tags := withErrorClass(map[string]string{"trigger": in.Trigger, "result": in.Result}, in.Result, in.Err)
	sink.Count(SyncRunCount, 1, tags)
	if in.Duration > 0 {
		sink.Timing(SyncRunDuration, in.Duration, CloneTags(tags))
	}
	if in.Result == ResultSuccess {
		sink.Gauge(PublishedJobs, float64(in.Jobs), nil)
	}
}

// Crawl summarises a single crawl.
type Crawl struct {
	Pages        int
	Postings     int
	DetailErrors int
}

// EmitCrawl records crawl volume.
func EmitCrawl(sink statsd.Sink, in Crawl) {
	if sink == nil {
		return
	}
	sink.Count(CrawlPages, int64(in.Pages), nil)
	sink.Gauge(CrawlPostings, float64(in.Postings), nil)
	if in.DetailErrors > 0 {
		sink.Count(CrawlDetailErrors, int64(in.DetailErrors), nil)
	}
}

// EmitSessions records page session churn after a sweep.
func EmitSessions(sink statsd.Sink, active, evicted int) {
	if sink == nil {
		return
	}
	sink.Gauge(SessionsActive, float64(active), nil)
	if evicted > 0 {
		sink.Count(SessionsEvicted, int64(evicted), nil)
	}
}

func withErrorClass(tags map[string]string, result string, err error) map[string]string {
	if err != nil && result == ResultError {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}
	return tags
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
