package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leantech/jobboard/config"
	"github.com/leantech/jobboard/internal/crawler"
	"github.com/leantech/jobboard/internal/data"
	"github.com/leantech/jobboard/internal/jobsapi"
	"github.com/leantech/jobboard/internal/observability/notify/slack"
	"github.com/leantech/jobboard/internal/observability/statsd"
	"github.com/leantech/jobboard/internal/service"
	"github.com/leantech/jobboard/internal/service/failurenotifier"
	"github.com/leantech/jobboard/internal/session"
)

// ServiceContainer holds the application services. Fields are nil when the
// service mode that needs them is disabled.
type ServiceContainer struct {
	// ui
	Sessions  *session.Registry
	Transport *jobsapi.Client

	// api and crawler
	Store   *data.JobStore
	Catalog *service.CatalogService
	Sync    *service.SyncService

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink     *statsd.Client
	FailureNotifier *failurenotifier.Service
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // required when api or crawler is enabled
	Logger      *slog.Logger
}

// NewServices wires the services needed by the enabled modes.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	container := ServiceContainer{Observability: buildObservability(logger, cfg)}
	sink := container.Observability.sink()

	if cfg.IsUIEnabled() {
		transport, err := jobsapi.NewClient(jobsapi.Config{
			BaseURL: cfg.JobsAPI.BaseURL,
			Timeout: cfg.JobsAPI.Timeout,
		})
		if err != nil {
			return ServiceContainer{}, fmt.Errorf("create jobs api client: %w", err)
		}
		container.Transport = transport
		container.Sessions = session.NewRegistry(session.RegistryOptions{
			Transport: transport,
			IdleTTL:   cfg.Session.IdleTTL,
			Metrics:   sink,
			Logger:    logger,
		})
	}

	if cfg.NeedsRedis() {
		if deps.RedisClient == nil {
			return ServiceContainer{}, errors.New("redis client is required for the api and crawler services")
		}
		store := data.NewJobStore(data.JobStoreOptions{
			Cache:  data.NewRedisCacheRepo(deps.RedisClient),
			Logger: logger,
		})
		jobvite, err := newCrawler(cfg.Crawler, sink, logger)
		if err != nil {
			return ServiceContainer{}, err
		}
		container.Store = store
		container.Catalog = service.NewCatalogService(service.CatalogServiceOptions{Repo: store, Logger: logger})
		container.Sync = service.NewSyncService(service.SyncServiceOptions{
			Repo:    store,
			Crawler: jobvite,
			Runtime: service.SyncRuntime{
				Config:   cfg.Sync,
				Source:   cfg.Crawler.ListingURL,
				Notifier: container.Observability.FailureNotifier,
				Metrics:  sink,
				Logger:   logger,
			},
		})
	}

	return container, nil
}

func newCrawler(cfg config.CrawlerConfig, sink statsd.Sink, logger *slog.Logger) (*crawler.Jobvite, error) {
	jobvite, err := crawler.NewJobvite(crawler.Options{
		ListingURL:      cfg.ListingURL,
		RatePerSecond:   cfg.RatePerSecond,
		Burst:           cfg.Burst,
		Concurrency:     cfg.Concurrency,
		MaxListingPages: cfg.MaxListingPages,
		UserAgent:       cfg.UserAgent,
		Client:          &http.Client{Timeout: cfg.RequestTimeout},
		Metrics:         sink,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create crawler: %w", err)
	}
	return jobvite, nil
}

// sink returns the metrics sink or nil, never a typed nil.
func (o ObservabilityContainer) sink() statsd.Sink {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg *config.AppConfig) ObservabilityContainer {
	var metricsSink *statsd.Client
	if cfg.Observability.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Observability.Metrics.StatsdAddress,
			Prefix:  "jobboard",
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:     metricsSink,
		FailureNotifier: buildFailureNotifier(logger, cfg),
	}
}

func buildFailureNotifier(logger *slog.Logger, cfg *config.AppConfig) *failurenotifier.Service {
	ncfg := cfg.Observability.Notifications
	if !ncfg.Enabled {
		return nil
	}

	var sinks []failurenotifier.SinkRegistration
	if ncfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: ncfg.Slack.WebhookURL,
			Channel:    ncfg.Slack.Channel,
			Username:   ncfg.Slack.Username,
			Timeout:    ncfg.Timeout,
			RetryLimit: ncfg.RetryLimit,
			AdminURL:   adminURL(cfg.HTTP.BaseURL),
		})
		if err != nil {
			logger.Error("failed to configure slack notifications", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}

	if len(sinks) == 0 {
		logger.Warn("sync failure notifications enabled but no sinks configured")
		return nil
	}
	return failurenotifier.NewService(failurenotifier.Options{Logger: logger, Sinks: sinks})
}

func adminURL(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return ""
	}
	return base + "/admin"
}

// ServiceOrchestrationConfig contains everything needed to run the enabled
// services until shutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server when ui or api is enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil {
		return nil
	}
	if !deps.enabledServices[config.ServiceModeUI] && !deps.enabledServices[config.ServiceModeAPI] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] || descriptor.start == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name,
					"error", errMsg,
				)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))
	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}
		handles = append(handles, backgroundServiceHandle{mode: svc.mode, name: svc.name, done: done})
	}
	return handles
}

func newSessionSweeperBackgroundService(deps *serviceStartupDeps) backgroundService {
	desc := backgroundService{mode: config.ServiceModeUI, name: "session-sweeper"}
	if deps == nil || deps.cfg == nil || deps.cfg.Services.Sessions == nil || deps.cfg.Config == nil {
		return desc
	}
	sweeper := service.NewSessionSweeperService(service.SessionSweeperServiceOptions{
		Sessions: deps.cfg.Services.Sessions,
		Interval: deps.cfg.Config.Session.SweepInterval,
		Logger:   deps.logger,
	})
	desc.start = sweeper.Run
	return desc
}

func newSyncSchedulerBackgroundService(deps *serviceStartupDeps) backgroundService {
	desc := backgroundService{mode: config.ServiceModeCrawler, name: "sync-scheduler"}
	if deps == nil || deps.cfg == nil || deps.cfg.Services.Sync == nil || deps.cfg.Config == nil {
		return desc
	}
	scheduler := service.NewSyncScheduler(service.SyncSchedulerOptions{
		Runner:   deps.cfg.Services.Sync,
		Interval: deps.cfg.Config.Crawler.Interval,
		Logger:   deps.logger,
	})
	desc.start = scheduler.Run
	return desc
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newSessionSweeperBackgroundService(deps),
		newSyncSchedulerBackgroundService(deps),
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	return ServiceStartupResult{
		HTTPServer: startHTTPServerIfEnabled(deps),
		Background: startBackgroundServices(deps, buildBackgroundServices(deps)),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  result.HTTPServer,
		services:    cfg.Services,
		logger:      logger,
		backgrounds: result.Background,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	count := 0
	for _, mode := range config.ValidServiceModes() {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	return errorChannelCapacity(enabled) + 1
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	services    ServiceContainer
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop stops the HTTP server, then in-flight sync runs, then the
// background loops.
func gracefulStop(cfg shutdownConfig) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	var errs []error
	if cfg.httpServer != nil {
		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			errs = append(errs, err)
		}
	}

	if cfg.services.Sync != nil {
		if err := cfg.services.Sync.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("stop sync runs: %w", err))
		}
	}

	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	if cfg.services.Sessions != nil {
		cfg.services.Sessions.Close()
	}
	if cfg.services.Observability.MetricsSink != nil {
		_ = cfg.services.Observability.MetricsSink.Close()
	}
	return errors.Join(errs...)
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
