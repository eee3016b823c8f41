package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"shorts_pipeline/internal/assets"
	"shorts_pipeline/internal/compose"
	"shorts_pipeline/internal/config"
	"shorts_pipeline/internal/generator/elevenlabs"
	"shorts_pipeline/internal/generator/openai"
	"shorts_pipeline/internal/httpapi"
	"shorts_pipeline/internal/media/ffprobe"
	"shorts_pipeline/internal/publisher"
	"shorts_pipeline/internal/scheduler"
	"shorts_pipeline/internal/service"
	"shorts_pipeline/internal/source/marketplace"
	"shorts_pipeline/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Scratch} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// nil interface, not a typed nil, when publishing is off
	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	// Initialize stores
	opportunityStore := postgres.NewOpportunityStore(db)
	videoStore := postgres.NewVideoStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Initialize capabilities
	openaiClient := openai.New(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	}, logger)

	speech := elevenlabs.New(elevenlabs.Config{
		APIKey:  cfg.ElevenLabs.APIKey,
		VoiceID: cfg.ElevenLabs.VoiceID,
		ModelID: cfg.ElevenLabs.ModelID,
		BaseURL: cfg.ElevenLabs.BaseURL,
		Timeout: cfg.ElevenLabs.Timeout,
	}, logger)

	acquirer := assets.NewAcquirer(assets.Config{
		Fetcher: assets.FetcherConfig{
			Timeout:        cfg.Assets.FetchTimeout,
			MaxAttempts:    cfg.Assets.MaxAttempts,
			InitialBackoff: cfg.Assets.InitialBackoff,
			MaxBackoff:     cfg.Assets.MaxBackoff,
			MaxBytes:       cfg.Assets.MaxBytes,
			UserAgent:      cfg.Assets.UserAgent,
		},
		Concurrency:  cfg.Assets.Concurrency,
		DefaultImage: cfg.Paths.DefaultImage,
		Width:        cfg.Media.Width,
		Height:       cfg.Media.Height,
	}, logger)

	composer := compose.NewComposer(
		compose.NewFFmpeg(cfg.Media.FFmpegPath, logger),
		ffprobe.NewProber(cfg.Media.FFprobePath),
		compose.Config{
			Width:             cfg.Media.Width,
			Height:            cfg.Media.Height,
			FPS:               cfg.Media.FPS,
			MinSegmentSeconds: cfg.Media.MinSegmentSeconds,
			MaxOverlays:       cfg.Media.MaxOverlays,
			FontFile:          cfg.Paths.FontFile,
		},
		logger,
	)

	pipeline := service.NewPipeline(service.PipelineDeps{
		Opportunities: opportunityStore,
		Videos:        videoStore,
		TxManager:     txManager,
		Scripts:       openaiClient,
		Speech:        speech,
		Overlays:      openaiClient,
		Assets:        acquirer,
		Composer:      composer,
		Publisher:     pub,
	}, logger, cfg.Pipeline, cfg.Paths, cfg.Schedule.Platforms)

	// Initialize marketplace sources
	sources := make([]service.Source, 0, len(cfg.Sourcing.Sources))
	for _, src := range cfg.Sourcing.Sources {
		sources = append(sources, marketplace.New(marketplace.Config{
			ID:             src.ID,
			Name:           src.Name,
			BaseURL:        src.BaseURL,
			APIKey:         src.APIKey,
			AffiliateTag:   src.AffiliateTag,
			PageSize:       src.PageSize,
			MaxPages:       src.MaxPages,
			Timeout:        src.Timeout,
			MaxAttempts:    src.MaxAttempts,
			InitialBackoff: src.InitialBackoff,
			MaxBackoff:     src.MaxBackoff,
		}, logger))
	}

	var sourcer *service.SourcingService
	var schedSourcer scheduler.Sourcer
	var apiSourcer httpapi.Sourcer
	if len(sources) > 0 {
		sourcer = service.NewSourcingService(sources, opportunityStore, logger, cfg.Sourcing)
		schedSourcer = sourcer
		apiSourcer = sourcer
	}

	ideas := service.NewIdeaService(opportunityStore, openaiClient, logger)

	sched, err := scheduler.New(pipeline, schedSourcer, scheduler.Config{
		Registrations: cfg.Registrations(),
		Timezone:      cfg.Schedule.Timezone,
		BatchTimeout:  cfg.Schedule.BatchTimeout,
		SourcingCron:  cfg.Sourcing.Cron,
	}, logger)
	if err != nil {
		logger.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpapi.NewRouter(&httpapi.API{
			Opportunities: opportunityStore,
			Videos:        videoStore,
			Generator:     sched,
			Ideas:         ideas,
			Sourcing:      apiSourcer,
			Logger:        logger.With("component", "http"),
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting shorts pipeline",
		"addr", cfg.HTTP.Addr,
		"platforms", cfg.Schedule.Platforms,
		"schedule_enabled", cfg.Schedule.Enabled,
		"sources", len(sources),
		"publisher", pub != nil,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Schedule.Enabled {
		g.Go(func() error {
			if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("shorts pipeline stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("shorts pipeline stopped")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
