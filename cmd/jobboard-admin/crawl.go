package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/leantech/jobboard/internal/bootstrap"
	"github.com/leantech/jobboard/internal/crawler"
	"github.com/leantech/jobboard/internal/data"
	"github.com/leantech/jobboard/internal/service"
)

type crawlOptions struct {
	Timeout time.Duration
	Publish bool
	URL     string
}

func parseCrawlFlags(args []string, cmdCtx *commandContext) (crawlOptions, error) {
	fs := flag.NewFlagSet("crawl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := crawlOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", cmdCtx.Config.Sync.RunTimeout, "Maximum duration for the crawl")
	fs.BoolVar(&opts.Publish, "publish", false, "Publish the result to the job store instead of printing it")
	fs.StringVar(&opts.URL, "url", cmdCtx.Config.Crawler.ListingURL, "Listing page to crawl (defaults to CRAWLER_LISTING_URL)")

	if err := fs.Parse(args); err != nil {
		return crawlOptions{}, err
	}
	if opts.Timeout <= 0 {
		return crawlOptions{}, errors.New("--timeout must be greater than zero")
	}
	if fs.NArg() > 0 {
		return crawlOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func newCrawler(cmdCtx *commandContext, listingURL string) (*crawler.Jobvite, error) {
	cfg := cmdCtx.Config.Crawler
	return crawler.NewJobvite(crawler.Options{
		ListingURL:      listingURL,
		RatePerSecond:   cfg.RatePerSecond,
		Burst:           cfg.Burst,
		Concurrency:     cfg.Concurrency,
		MaxListingPages: cfg.MaxListingPages,
		UserAgent:       cfg.UserAgent,
		Client:          &http.Client{Timeout: cfg.RequestTimeout},
		Logger:          cmdCtx.Logger,
	})
}

func runCrawl(cmdCtx *commandContext, args []string) error {
	opts, err := parseCrawlFlags(args, cmdCtx)
	if err != nil {
		return err
	}
	jobvite, err := newCrawler(cmdCtx, opts.URL)
	if err != nil {
		return fmt.Errorf("create crawler: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	if !opts.Publish {
		jobs, crawlErr := jobvite.Crawl(ctx)
		if crawlErr != nil {
			return fmt.Errorf("crawl: %w", crawlErr)
		}
		return writeJSON(cmdCtx.Out, jobs)
	}

	return publishCrawl(ctx, cmdCtx, jobvite)
}

// publishCrawl runs a full sync under the shared lock, so it never races a
// scheduled run.
func publishCrawl(ctx context.Context, cmdCtx *commandContext, jobvite *crawler.Jobvite) error {
	rdb, err := bootstrap.ConnectRedis(bootstrap.RedisOptions{Config: cmdCtx.Config.Redis, Logger: cmdCtx.Logger})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := rdb.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	store := data.NewJobStore(data.JobStoreOptions{Cache: data.NewRedisCacheRepo(rdb), Logger: cmdCtx.Logger})
	syncSvc := service.NewSyncService(service.SyncServiceOptions{
		Repo:    store,
		Crawler: jobvite,
		Runtime: service.SyncRuntime{
			Config: cmdCtx.Config.Sync,
			Source: cmdCtx.Config.Crawler.ListingURL,
			Logger: cmdCtx.Logger,
		},
	})

	st, runErr := syncSvc.Run(ctx, service.TriggerCLI)
	if st != nil {
		if renderErr := renderSyncStatus(cmdCtx.Out, st); renderErr != nil {
			return renderErr
		}
	}
	if runErr != nil {
		return fmt.Errorf("publish crawl: %w", runErr)
	}
	return nil
}
