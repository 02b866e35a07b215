package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	mediacontracts "github.com/murkotick/storefront-service/internal/app/media/contracts"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/config"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/pkg/jobs"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
	"github.com/murkotick/storefront-service/internal/pkg/notify"
	"github.com/murkotick/storefront-service/internal/pkg/outbox"
	"github.com/murkotick/storefront-service/internal/pkg/speech"
	"github.com/murkotick/storefront-service/internal/pkg/storage"
	"github.com/murkotick/storefront-service/internal/pkg/tracing"
	"github.com/murkotick/storefront-service/internal/transport/grpc/admin"
	"github.com/murkotick/storefront-service/internal/transport/httpapi"
	"github.com/murkotick/storefront-service/internal/wiring"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the public HTTP API, the admin gRPC service and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	tp, err := tracing.InitTracing(ctx, cfg.TracingConfig.CollectorHost)
	if err != nil {
		return err
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	clk := clock.RealClock{}
	store, closeStore, err := openStore(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	objects, err := openObjectStore(ctx, cfg.UploadConfig)
	if err != nil {
		return err
	}
	var synth mediacontracts.Synthesizer
	if cfg.SpeechConfig.APIKey != "" {
		g, err := speech.NewGeminiSynthesizer(ctx, cfg.SpeechConfig.APIKey, cfg.SpeechConfig.Model, cfg.SpeechConfig.Voice)
		if err != nil {
			return err
		}
		synth = g
	}
	defaults, err := settings.LoadDefaults()
	if err != nil {
		return err
	}

	app := wiring.Build(wiring.Deps{
		Store:   store,
		Clock:   clk,
		Metrics: m,
		Notifier: notify.New(notify.SMTPConfig{
			Host:     cfg.SMTPConfig.Host,
			Port:     cfg.SMTPConfig.Port,
			Username: cfg.SMTPConfig.Username,
			Password: cfg.SMTPConfig.Password,
			From:     cfg.SMTPConfig.From,
			To:       cfg.SMTPConfig.To,
		}),
		Objects:     objects,
		Synthesizer: synth,
		Defaults:    defaults,
	})
	if err := app.Categories.Fetch(ctx); err != nil {
		log.Warn().Err(err).Str("component", "serve").Msg("category preload failed; defaults served until next refresh")
	}

	var publisher outbox.Publisher = outbox.LogPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		publisher = outbox.NewKafkaPublisher(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic)
	}
	defer publisher.Close()

	scheduler, err := jobs.New()
	if err != nil {
		return err
	}
	relay := outbox.NewRelay(store, publisher, m, clk, cfg.JobsConfig.OutboxBatchSize)
	if err := scheduler.Every("outbox-relay", cfg.JobsConfig.OutboxInterval, relay.Run); err != nil {
		return err
	}
	if err := scheduler.Every("subscription-sweep", cfg.JobsConfig.SubscriptionSweep, app.SweepExpired); err != nil {
		return err
	}

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.AdminEmails)
	uploadDir := ""
	if cfg.UploadConfig.Driver == config.UploadLocal {
		uploadDir = cfg.UploadConfig.Dir
	}
	e := httpapi.New(app.HTTP, httpapi.Options{Verifier: verifier, Registerer: reg, UploadDir: uploadDir})
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.Traced(e)}
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: httpapi.NewMetricsServer(reg)}
	grpcSrv := admin.NewServer(app.Admin, verifier)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	serverErr := make(chan error, 3)
	go func() {
		log.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC admin server listening")
		if err := grpcSrv.Serve(lis); err != nil {
			serverErr <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	for _, srv := range []*http.Server{httpSrv, metricsSrv} {
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("http serve %s: %w", srv.Addr, err)
			}
		}()
	}
	scheduler.Start()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err = <-serverErr:
		log.Error().Err(err).Msg("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range []*http.Server{httpSrv, metricsSrv} {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			log.Error().Err(serr).Str("addr", srv.Addr).Msg("http shutdown failed")
		}
	}
	stopGRPC(grpcSrv)
	if serr := scheduler.Shutdown(); serr != nil {
		log.Error().Err(serr).Msg("scheduler shutdown failed")
	}

	log.Info().Msg("server stopped")
	return err
}

func stopGRPC(srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		srv.Stop()
	}
}

func openStore(ctx context.Context, cfg *config.Config, clk clock.Clock) (docstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Str("component", "serve").Msg("using the in-memory store; data is lost on exit")
		return docstore.NewMemory(clk), func() {}, nil
	case config.StoreSpanner:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, nil, fmt.Errorf("spanner.NewClient: %w", err)
		}
		return docstore.NewSpannerStore(client, clk), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// openObjectStore returns nil when Drive uploads are selected but not
// configured; the upload endpoint then answers 503.
func openObjectStore(ctx context.Context, cfg config.UploadConfig) (mediacontracts.ObjectStore, error) {
	switch cfg.Driver {
	case config.UploadDrive:
		if cfg.DriveCredentialsFile == "" || cfg.DriveFolderID == "" {
			log.Warn().Str("component", "serve").Msg("drive uploads selected without credentials; uploads disabled")
			return nil, nil
		}
		return storage.NewDriveStore(ctx, cfg.DriveCredentialsFile, cfg.DriveFolderID)
	case config.UploadLocal:
		return storage.NewLocalStore(cfg.Dir, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("unknown UPLOAD_DRIVER %q", cfg.Driver)
}
