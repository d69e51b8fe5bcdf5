// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggofiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/apollohq/wireframe-to-code-backend/docs" // swagger spec registration
	"github.com/apollohq/wireframe-to-code-backend/internal/cache"
	"github.com/apollohq/wireframe-to-code-backend/internal/config"
	"github.com/apollohq/wireframe-to-code-backend/internal/http/handlers"
	"github.com/apollohq/wireframe-to-code-backend/internal/http/middleware"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/services"
	"github.com/apollohq/wireframe-to-code-backend/internal/storage"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability (tracing, metrics), rate limiting, CORS and security
// headers, compression, health and metrics endpoints, the static /files
// mount for stored wireframe images, and the public API under /api.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with identifier scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (sized for base64-inflated image payloads)
//  6. Metrics
//  7. Rate limiter (per email/IP)
//  8. Gzip (excluding the plain-text inference stream)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.Store, ai *inference.Client, resultCache cache.Cache, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging; emails and uids travel in query strings here,
	// so the redacting variant is not optional.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body cap: the image ceiling plus base64 inflation (~4/3) and the
	// JSON envelope around it.
	r.Use(limitBody(cfg.MaxImageBytes + cfg.MaxImageBytes/2))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per email/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByEmailOrIP())
	r.Use(rl.Handler())

	// 8) Compression. The ai-process stream must reach the client delta by
	// delta, so it stays uncompressed; image bytes under /files are already
	// compressed formats.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{
		cfg.APIBasePath + "/ai-process",
		"/files",
		"/metrics",
	})))

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps
		// tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Stored wireframe images, served from the disk object store.
	r.Static("/files", cfg.StorageDir)

	// Interactive API docs (generated spec lives in docs/).
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginswagger.WrapHandler(swaggofiles.Handler))
	}

	// Dependency injection: services ← repo/db/adapters
	genSvc := &services.GenerationService{
		DB:            db,
		Store:         store,
		Vision:        ai,
		SystemPrompt:  cfg.Inference.VisionSystem,
		MaxImageBytes: cfg.MaxImageBytes,
	}
	userSvc := &services.UserService{DB: db, DefaultCredits: cfg.DefaultCredits}
	enhanceSvc := &services.EnhanceService{
		Text:     ai,
		Model:    cfg.Inference.EnhanceModel,
		MinChars: cfg.Enhance.MinChars,
		MaxChars: cfg.Enhance.MaxChars,
		Cache:    resultCache,
	}
	h := handlers.New(genSvc, userSvc, enhanceSvc, ai, store,
		cfg.Inference.VisionSystem, cfg.MaxImageBytes, cfg.Enhance)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Streaming inference
		api.POST("/ai-process", h.AIProcess)

		// Generation records
		api.POST("/wireframe-to-code", h.CreateGeneration)
		api.GET("/wireframe-to-code", h.GetGeneration)
		api.PUT("/wireframe-to-code", h.UpdateGenerationCode)
		api.DELETE("/wireframe-to-code", h.DeleteGeneration)

		// Prompt enhancement
		api.POST("/enhance-prompt", h.EnhancePrompt)

		// Uploads and model registry
		api.POST("/upload", h.Upload)
		api.GET("/models", h.ListModels)

		// User accounts and credits
		api.POST("/user", h.RegisterUser)
		api.GET("/user", h.GetUser)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
