package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leantech/jobboard/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAppConfig(services string) *config.AppConfig {
	cfg := &config.AppConfig{Services: services}
	cfg.HTTP.BaseURL = "http://localhost:8080"
	cfg.JobsAPI.BaseURL = "http://localhost:8080"
	cfg.Session.IdleTTL = time.Minute
	cfg.Session.SweepInterval = time.Minute
	cfg.Crawler.ListingURL = "https://jobs.jobvite.com/leantechio/"
	cfg.Crawler.Interval = time.Hour
	cfg.Sanitize()
	return cfg
}

func TestErrorChannelCapacity(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{name: "no services enabled", want: 0},
		{name: "ui only", modes: []config.ServiceMode{config.ServiceModeUI}, want: 1},
		{
			name:  "api and crawler",
			modes: []config.ServiceMode{config.ServiceModeAPI, config.ServiceModeCrawler},
			want:  2,
		},
		{name: "all services enabled", modes: config.ValidServiceModes(), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}
			assert.Equal(t, tt.want, errorChannelCapacity(enabled))
			assert.Equal(t, tt.want+1, errorChannelBufferSize(enabled))
		})
	}
}

func TestNewServices_UIOnly(t *testing.T) {
	svcs, err := NewServices(&ServiceDeps{Config: testAppConfig("ui"), Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(svcs.Sessions.Close)

	assert.NotNil(t, svcs.Sessions)
	assert.NotNil(t, svcs.Transport)
	assert.Nil(t, svcs.Store)
	assert.Nil(t, svcs.Catalog)
	assert.Nil(t, svcs.Sync)
	assert.Nil(t, svcs.Observability.MetricsSink)
	assert.Nil(t, svcs.Observability.FailureNotifier)
}

func TestNewServices_APIRequiresRedis(t *testing.T) {
	_, err := NewServices(&ServiceDeps{Config: testAppConfig("api"), Logger: discardLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis client is required")
}

func TestNewServices_APIAndCrawler(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	svcs, err := NewServices(&ServiceDeps{
		Config:      testAppConfig("api,crawler"),
		RedisClient: rdb,
		Logger:      discardLogger(),
	})
	require.NoError(t, err)

	assert.Nil(t, svcs.Sessions)
	assert.NotNil(t, svcs.Store)
	assert.NotNil(t, svcs.Catalog)
	require.NotNil(t, svcs.Sync)
	require.NoError(t, svcs.Sync.Shutdown(context.Background()))
}

func TestNewServices_RejectsBadCrawlerURL(t *testing.T) {
	cfg := testAppConfig("crawler")
	cfg.Crawler.ListingURL = "not a url"
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	_, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: rdb, Logger: discardLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create crawler")
}

func TestBuildFailureNotifier(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := testAppConfig("crawler")
		assert.Nil(t, buildFailureNotifier(discardLogger(), cfg))
	})

	t.Run("enabled without sinks", func(t *testing.T) {
		cfg := testAppConfig("crawler")
		cfg.Observability.Notifications.Enabled = true
		assert.Nil(t, buildFailureNotifier(discardLogger(), cfg))
	})

	t.Run("slack", func(t *testing.T) {
		cfg := testAppConfig("crawler")
		cfg.Observability.Notifications.Enabled = true
		cfg.Observability.Notifications.Slack.Enabled = true
		cfg.Observability.Notifications.Slack.WebhookURL = "https://hooks.slack.com/services/T000/B000/XXX"
		n := buildFailureNotifier(discardLogger(), cfg)
		require.NotNil(t, n)
		assert.True(t, n.Enabled())
	})
}

func TestAdminURL(t *testing.T) {
	assert.Equal(t, "https://jobs.example.com/admin", adminURL("https://jobs.example.com/"))
	assert.Equal(t, "http://localhost:8080/admin", adminURL(" http://localhost:8080 "))
	assert.Empty(t, adminURL(""))
}

func TestBuildBackgroundServices(t *testing.T) {
	cfg := testAppConfig("ui")
	svcs, err := NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(svcs.Sessions.Close)

	deps := &serviceStartupDeps{
		ctx:             context.Background(),
		cfg:             &ServiceOrchestrationConfig{Config: cfg, Services: svcs},
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeUI: true},
		errCh:           make(chan error, 1),
	}
	descs := buildBackgroundServices(deps)
	require.Len(t, descs, 2)

	assert.Equal(t, "session-sweeper", descs[0].name)
	assert.NotNil(t, descs[0].start)
	assert.Equal(t, "sync-scheduler", descs[1].name)
	assert.Nil(t, descs[1].start, "no sync service without the crawler mode")
}

func TestLaunchBackground_ReportsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps := &serviceStartupDeps{
		ctx:             ctx,
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{config.ServiceModeCrawler: true},
		errCh:           make(chan error, 1),
	}

	done := launchBackground(ctx, deps, backgroundService{
		mode:  config.ServiceModeCrawler,
		name:  "sync-scheduler",
		start: func(context.Context) error { return assert.AnError },
	})
	require.NotNil(t, done)
	<-done

	select {
	case err := <-deps.errCh:
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "sync-scheduler failed")
	default:
		t.Fatal("expected error on channel")
	}
}

func TestLaunchBackground_SkipsDisabledMode(t *testing.T) {
	deps := &serviceStartupDeps{
		logger:          discardLogger(),
		enabledServices: map[config.ServiceMode]bool{},
		errCh:           make(chan error, 1),
	}
	done := launchBackground(context.Background(), deps, backgroundService{
		mode:  config.ServiceModeUI,
		name:  "session-sweeper",
		start: func(context.Context) error { return nil },
	})
	assert.Nil(t, done)
}

func TestRouterServices(t *testing.T) {
	cfg := testAppConfig("ui")
	cfg.Apply.WhatsAppNumber = "5554991259084"
	svcs, err := NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(svcs.Sessions.Close)

	rs := routerServices(cfg, svcs, discardLogger())
	assert.NotNil(t, rs.Sessions)
	assert.NotNil(t, rs.SyncTrigger)
	assert.Nil(t, rs.Catalog)
	assert.Nil(t, rs.Health)
	assert.Equal(t, "5554991259084", rs.ApplyNumber)
}

func TestGetEnabledServices(t *testing.T) {
	assert.Equal(t, []string{"ui", "api", "crawler"}, GetEnabledServices(testAppConfig("crawler,ui,api")))
	assert.Empty(t, GetEnabledServices(testAppConfig("bogus")))
	assert.Empty(t, GetEnabledServices(nil))
}

func TestValidateServiceConfig(t *testing.T) {
	require.NoError(t, ValidateServiceConfig(testAppConfig("ui")))
	require.Error(t, ValidateServiceConfig(testAppConfig("")))
	require.Error(t, ValidateServiceConfig(nil))
}
