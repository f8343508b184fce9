// Package crawler scrapes job postings from a Jobvite career site.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/domain/model"
	"github.com/leantech/jobboard/internal/observability/metrics"
	"github.com/leantech/jobboard/internal/observability/statsd"
)

const (
	defaultUserAgent       = "jobboard-crawler/1.0"
	defaultMaxListingPages = 20
)

// Options configures a Jobvite crawler.
type Options struct {
	// ListingURL is the career page listing every open position. Detail
	// pages live at <ListingURL>job/<id>.
	ListingURL string

	RatePerSecond   float64
	Burst           int
	Concurrency     int
	MaxListingPages int
	UserAgent       string

	// Client performs page fetches. Its timeout bounds each request.
	Client *http.Client

	Metrics statsd.Sink
	Logger  *slog.Logger
}

// Jobvite crawls a Jobvite career site.
type Jobvite struct {
	listing     *url.URL
	client      *http.Client
	limiter     *rate.Limiter
	userAgent   string
	concurrency int
	maxPages    int
	metrics     statsd.Sink
	logger      *slog.Logger
}

var _ core.JobCrawler = (*Jobvite)(nil)

// NewJobvite validates opts and builds a crawler.
func NewJobvite(opts Options) (*Jobvite, error) {
	raw := strings.TrimSpace(opts.ListingURL)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("listing url %q must be absolute", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := rate.Limit(opts.RatePerSecond)
	if opts.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := max(opts.Burst, 1)
	maxPages := opts.MaxListingPages
	if maxPages < 1 {
		maxPages = defaultMaxListingPages
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Jobvite{
		listing:     u,
		client:      client,
		limiter:     rate.NewLimiter(limit, burst),
		userAgent:   ua,
		concurrency: max(opts.Concurrency, 1),
		maxPages:    maxPages,
		metrics:     opts.Metrics,
		logger:      logger.With("component", "crawler", "site", u.Host),
	}, nil
}

// Crawl collects every listed posting and fills in its detail page.
//
// A listing page that cannot be fetched fails the crawl. A detail page that
// cannot be fetched or parsed keeps the posting with empty detail fields.
func (j *Jobvite) Crawl(ctx context.Context) ([]model.JobPosting, error) {
	entries, pages, err := j.collectListing(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.JobPosting, len(entries))
	var (
		mu           sync.Mutex
		detailErrors int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for i, e := range entries {
		jobs[i] = model.JobPosting{ID: e.id, Title: e.title}
		g.Go(func() error {
			d, err := j.fetchDetail(gctx, e.id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				j.logger.WarnContext(ctx, "job detail unavailable",
					"jobvite_id", e.id,
					"error", err,
				)
				mu.Lock()
				detailErrors++
				mu.Unlock()
				return nil
			}
			jobs[i].Description = d.description
			jobs[i].Sector = d.sector
			jobs[i].WorkMode = d.workMode
			jobs[i].Country = d.country
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("crawl details: %w", err)
	}

	metrics.EmitCrawl(j.metrics, metrics.Crawl{
		Pages:        pages + len(entries),
		Postings:     len(jobs),
		DetailErrors: detailErrors,
	})
	j.logger.InfoContext(ctx, "crawl completed",
		"listing_pages", pages,
		"postings", len(jobs),
		"detail_errors", detailErrors,
	)
	return jobs, nil
}

// collectListing walks the listing page and every "Show More" page reachable
// from it on the same site, keeping entries in first-seen order.
func (j *Jobvite) collectListing(ctx context.Context) ([]listingEntry, int, error) {
	start := j.listing.String()
	doc, err := j.fetch(ctx, start)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch listing: %w", err)
	}

	var (
		entries []listingEntry
		seen    = make(map[string]struct{})
		visited = map[string]struct{}{start: {}}
		queue   []string
		pages   = 1
	)
	add := func(d *goquery.Document, pageURL *url.URL) {
		for _, e := range parseListing(d) {
			if _, dup := seen[e.id]; dup {
				continue
			}
			seen[e.id] = struct{}{}
			entries = append(entries, e)
		}
		for _, next := range showMoreLinks(d, pageURL) {
			if !sameSite(j.listing, next) {
				j.logger.DebugContext(ctx, "skipping off-site show more link", "url", next.String())
				continue
			}
			s := next.String()
			if _, ok := visited[s]; ok {
				continue
			}
			visited[s] = struct{}{}
			queue = append(queue, s)
		}
	}
	add(doc, j.listing)

	for len(queue) > 0 && pages < j.maxPages {
		next := queue[0]
		queue = queue[1:]
		d, err := j.fetch(ctx, next)
		if err != nil {
			if ctx.Err() != nil {
				return nil, pages, ctx.Err()
			}
			j.logger.WarnContext(ctx, "show more page unavailable", "url", next, "error", err)
			continue
		}
		pages++
		pageURL, _ := url.Parse(next)
		add(d, pageURL)
	}
	if len(queue) > 0 {
		j.logger.WarnContext(ctx, "listing page limit reached", "limit", j.maxPages, "skipped", len(queue))
	}
	return entries, pages, nil
}

func (j *Jobvite) fetchDetail(ctx context.Context, id string) (jobDetail, error) {
	doc, err := j.fetch(ctx, j.DetailURL(id))
	if err != nil {
		return jobDetail{}, err
	}
	return parseDetail(doc)
}

// DetailURL returns the detail page address for a posting id.
func (j *Jobvite) DetailURL(id string) string {
	return j.listing.JoinPath("job", id).String()
}

// StatusError reports a non-2xx page response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

var errNotHTML = errors.New("response is not html")

func (j *Jobvite) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	if err := j.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", j.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("GET %s: %w (%s)", target, errNotHTML, ct)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}
	return doc, nil
}
