package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/config"
	"github.com/chirp-app/chirp-ai/internal/metrics"
)

type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// NewServer wires the router: health and metrics are open, the analysis
// endpoints sit behind bearer auth when a token is configured.
func NewServer(cfg *config.Config, handlers *Handlers, health *HealthHandler, log zerolog.Logger) *Server {
	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(Logger(log))
	r.Use(CORS)
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", health.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(cfg.AuthToken))

		r.Post("/stt", handlers.HandleSTT)
		r.Post("/stt/upload", handlers.HandleSTTUpload)
		r.Get("/stt/languages", handlers.HandleSTTLanguages)

		r.Post("/analyze/audio", handlers.HandleAnalyzeAudio)
		r.Post("/analyze/audio/upload", handlers.HandleAnalyzeAudioUpload)
		r.Post("/analyze/video", handlers.HandleAnalyzeVideo)
		r.Post("/analyze/video/upload", handlers.HandleAnalyzeVideoUpload)

		r.Post("/align", handlers.HandleAlign)
		r.Post("/align/upload", handlers.HandleAlignUpload)

		r.Post("/generate", handlers.HandleGenerate)
	})

	return &Server{
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server starting")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.http.Shutdown(ctx)
}

// ShutdownTimeout is the grace period for in-flight requests on shutdown.
const ShutdownTimeout = 10 * time.Second
