// Command console is the command-line client of the garment-export
// management backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/application/insight"
	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/application/screen"
	"github.com/erp/ausyexpo/internal/infrastructure/api"
	"github.com/erp/ausyexpo/internal/infrastructure/auth"
	"github.com/erp/ausyexpo/internal/infrastructure/config"
	"github.com/erp/ausyexpo/internal/infrastructure/logger"
	"github.com/erp/ausyexpo/internal/infrastructure/telemetry"
	"github.com/erp/ausyexpo/internal/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, bootstrap, cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}, os.Args[1:])
	stop()
	os.Exit(code)
}

func bootstrap(ctx context.Context, s cli.Settings, notifier listing.Notifier) (*cli.App, error) {
	// Load configuration
	cfg, err := config.LoadFile(s.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if s.LogLevel != "" {
		cfg.Log.Level = s.LogLevel
	}

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cli.Version,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}

	// Telemetry starts first so the logger can tee into the log exporter
	providers, err := telemetry.Start(ctx, telemetryCfg)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, providers.LogCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if providers.Enabled() {
		log.Debug("Telemetry exporting",
			zap.String("collector_endpoint", telemetryCfg.CollectorEndpoint),
			zap.Float64("sampling_ratio", telemetryCfg.SamplingRatio))
	}

	// Credential: configuration wins over the stored token
	tokens := auth.NewFileStore(cfg.API.TokenFile)
	token := cfg.API.Token
	if token == "" {
		if token, err = tokens.Load(ctx); err != nil {
			log.Warn("Stored token unreadable, continuing signed out", zap.Error(err))
			token = ""
		}
	}
	session := auth.NewSession(token)
	if session.Expired(time.Now()) {
		log.Warn("Session token has expired; the backend will reject requests until a new token is set",
			zap.Time("expires_at", session.Claims().ExpiresAt))
	}

	client, err := api.NewClient(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Session:   session,
		Logger:    log,
		Meter:     providers.Meter(telemetry.TracerName),
	})
	if err != nil {
		return nil, err
	}

	log.Debug("Console ready",
		zap.String("env", cfg.App.Env),
		zap.String("api", client.BaseURL()),
		zap.Bool("signed_in", !session.Anonymous()),
	)

	return &cli.App{
		Registry: screen.NewRegistry(screen.Env{
			Client:   client,
			Notifier: notifier,
			Logger:   log,
			PageSize: cfg.Listing.PageSize,
		}),
		Insight: insight.NewService(client),
		Tokens:  tokens,
		Session: session,
		Seed:    cfg.Seed,
		Logger:  log,
		Shutdown: func(ctx context.Context) error {
			defer logger.Sync(log)
			return providers.Shutdown(ctx)
		},
	}, nil
}
