package main

import (
	"context"
	"errors"
	"log"
	"time"

	"book-recommender/backend/internal/config"
	"book-recommender/backend/internal/handler"
	"book-recommender/backend/internal/middleware"
	"book-recommender/backend/internal/tracer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			log.Fatalf("[FATAL] %v: set GEMINI_API_KEY (or GOOGLE_GEMINI_KEY), or OPENAI_API_KEY for the openai provider", err)
		}
		log.Fatalf("[FATAL] Failed to load config: %v", err)
	}

	log.Printf("[INFO] Starting %s env=%s", cfg.App.Name, cfg.App.Env)

	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Printf("[WARN] Tracing disabled: %v", err)
		shutdownTracer = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Printf("[WARN] Tracer shutdown: %v", err)
		}
	}()

	closeStore, err := handler.InitRecommender(ctx, cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize recommender: %v", err)
	}
	defer closeStore()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())
	if cfg.Observability.Tracing.Enabled {
		r.Use(middleware.Trace(cfg.App.Name), middleware.TraceID())
	}
	if cfg.Observability.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}

	allowedOrigins := cfg.Server.AllowedOrigins
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}

	// The form is same-origin, CORS only matters for separately hosted API clients
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := handler.RegisterRoutes(r); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	if cfg.Observability.Metrics.Enabled {
		r.GET(cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v", cfg.Server.Port, allowedOrigins)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
