package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/analyze"
	"github.com/chirp-app/chirp-ai/internal/api"
	"github.com/chirp-app/chirp-ai/internal/audio"
	"github.com/chirp-app/chirp-ai/internal/config"
	"github.com/chirp-app/chirp-ai/internal/events"
	"github.com/chirp-app/chirp-ai/internal/facemesh"
	"github.com/chirp-app/chirp-ai/internal/media"
	"github.com/chirp-app/chirp-ai/internal/transcribe"
	"github.com/chirp-app/chirp-ai/internal/video"
	"github.com/chirp-app/chirp-ai/internal/watch"
)

var version = "dev"

func main() {
	startTime := time.Now()

	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env-file", "", "path to .env file")
	flag.StringVar(&overrides.HTTPAddr, "addr", "", "http listen address")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (trace..error)")
	flag.StringVar(&overrides.WhisperURL, "whisper-url", "", "whisper endpoint url")
	flag.StringVar(&overrides.WatchDir, "watch-dir", "", "media drop directory to watch")
	flag.Parse()

	// Config
	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	// Logger
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("chirp-ai starting")

	if !audio.CheckSox() {
		log.Warn().Msg("sox not found in PATH; audio decoding disabled")
	}
	if !video.CheckFFmpeg() {
		log.Warn().Msg("ffmpeg not found in PATH; video analysis disabled")
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Transcription provider
	whisper := transcribe.NewWhisperClient(cfg.WhisperURL, cfg.WhisperModel, cfg.WhisperTimeout)

	// Face-mesh sidecar (optional)
	var mesh *facemesh.Client
	if cfg.FaceMeshURL != "" {
		mesh = facemesh.NewClient(cfg.FaceMeshURL, cfg.FaceMeshTimeout)
	} else {
		log.Warn().Msg("FACEMESH_URL not set; video analysis will report no face")
	}

	// Media fetcher
	fetcher, err := media.NewFetcher(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build media fetcher")
	}

	// MQTT publisher (optional)
	var pub *events.Publisher
	if cfg.MQTTBrokerURL != "" {
		pub, err = events.Connect(events.Options{
			BrokerURL: cfg.MQTTBrokerURL,
			ClientID:  cfg.MQTTClientID,
			Topic:     cfg.MQTTTopic,
			Username:  cfg.MQTTUsername,
			Password:  cfg.MQTTPassword,
			Log:       log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mqtt broker")
		}
		defer pub.Close()
	}

	// Analysis service and worker pool
	svc := analyze.NewService(whisper, mesh, log)
	pool := analyze.NewPool(analyze.PoolOptions{
		Service:   svc,
		Publisher: pub,
		Workers:   cfg.Workers,
		Timeout:   cfg.WhisperTimeout + time.Minute,
		Log:       log,
	})
	pool.Start()
	defer pool.Stop()

	// Directory watcher (optional)
	var watcher *watch.Watcher
	if cfg.WatchDir != "" {
		watcher = watch.New(pool, cfg.WatchDir, cfg.WatchDebounce, log)
		if err := watcher.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start media watcher")
		}
		defer watcher.Stop()
	}

	// HTTP server
	httpLog := log.With().Str("component", "http").Logger()
	handlers := api.NewHandlers(svc, fetcher, cfg.MaxUploadBytes, httpLog)
	health := api.NewHealthHandler(pool, pub, watcher, mesh != nil, version, startTime)
	srv := api.NewServer(cfg, handlers, health, httpLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), api.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("chirp-ai stopped")
}
