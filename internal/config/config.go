// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database and storage paths, inference
// provider credentials, credit policy, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// InferenceConfig defines the upstream chat-completions provider used for
// vision (wireframe → code) and text (prompt enhancement) calls.
type InferenceConfig struct {
	BaseURL string // INFERENCE_BASE_URL, OpenRouter-compatible root
	APIKey  string // INFERENCE_API_KEY
	Referer string // INFERENCE_HTTP_REFERER, forwarded as HTTP-Referer
	Title   string // INFERENCE_APP_TITLE, forwarded as X-Title

	// Timeout bounds one inference call end to end, including streaming.
	Timeout time.Duration // INFERENCE_TIMEOUT, default 5m

	VisionMaxTokens int    // VISION_MAX_TOKENS for code generation
	VisionSystem    string // VISION_SYSTEM_PROMPT override
	EnhanceModel    string // ENHANCE_MODEL, text model for prompt rewriting
}

// EnhanceConfig bounds the prompt-enhancement input and output lengths.
// Both are measured in characters; output is clamped to the same window.
type EnhanceConfig struct {
	MinChars int // ENHANCE_MIN_CHARS
	MaxChars int // ENHANCE_MAX_CHARS
}

// RedisConfig configures the optional enhancement-result cache.
// An empty Addr disables caching entirely.
type RedisConfig struct {
	Addr     string        // REDIS_ADDR, e.g. "localhost:6379"
	Password string        // REDIS_PASSWORD
	DB       int           // REDIS_DB
	TTL      time.Duration // REDIS_TTL for cached entries
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 30s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // must exceed the inference timeout for streaming
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath         string // SQLite path
	StorageDir     string // root directory of the disk object store
	PublicBaseURL  string // absolute URL prefix for stored image links
	MaxImageBytes  int64  // upload ceiling for wireframe images
	DefaultCredits int    // starting balance for new accounts

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Upstream AI provider
	Inference InferenceConfig
	Enhance   EnhanceConfig

	// Optional cache
	Redis RedisConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 30*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		// Streamed completions are written incrementally; the write timeout
		// must cover the whole inference window.
		WriteTimeout:   getdur("WRITE_TIMEOUT", 6*time.Minute),
		IdleTimeout:    getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:        strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		// App
		DBPath:         getenv("DB_PATH", "app.db"),
		StorageDir:     getenv("STORAGE_DIR", "data/objects"),
		PublicBaseURL:  strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		MaxImageBytes:  getint64("MAX_IMAGE_BYTES", 10<<20),
		DefaultCredits: getint("DEFAULT_CREDITS", 3),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Upstream AI provider
		Inference: InferenceConfig{
			BaseURL:         strings.TrimRight(getenv("INFERENCE_BASE_URL", "https://openrouter.ai/api/v1"), "/"),
			APIKey:          getenv("INFERENCE_API_KEY", ""),
			Referer:         getenv("INFERENCE_HTTP_REFERER", ""),
			Title:           getenv("INFERENCE_APP_TITLE", "Apollo Wireframe-to-Code"),
			Timeout:         getdur("INFERENCE_TIMEOUT", 5*time.Minute),
			VisionMaxTokens: getint("VISION_MAX_TOKENS", 4000),
			VisionSystem: getenv("VISION_SYSTEM_PROMPT",
				"You are a professional UI/UX developer. Analyze the image and provide detailed, accurate HTML/CSS code."),
			EnhanceModel: getenv("ENHANCE_MODEL", "google/gemini-2.0-flash-exp:free"),
		},
		Enhance: EnhanceConfig{
			MinChars: getint("ENHANCE_MIN_CHARS", 100),
			MaxChars: getint("ENHANCE_MAX_CHARS", 1000),
		},

		// Optional cache
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", ""),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
			TTL:      getdur("REDIS_TTL", time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "wireframe-to-code-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.StorageDir) == "" {
		return cfg, errors.New("STORAGE_DIR must not be empty")
	}
	if cfg.MaxImageBytes <= 0 {
		return cfg, errors.New("MAX_IMAGE_BYTES must be > 0")
	}
	if cfg.DefaultCredits < 0 {
		return cfg, errors.New("DEFAULT_CREDITS must be >= 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.Inference.Timeout <= 0 {
		return cfg, errors.New("INFERENCE_TIMEOUT must be > 0")
	}
	if cfg.Inference.VisionMaxTokens <= 0 {
		return cfg, errors.New("VISION_MAX_TOKENS must be > 0")
	}
	if cfg.Enhance.MinChars <= 0 || cfg.Enhance.MaxChars <= cfg.Enhance.MinChars {
		return cfg, errors.New("ENHANCE_MIN_CHARS/ENHANCE_MAX_CHARS must satisfy 0 < min < max")
	}
	if cfg.Redis.TTL <= 0 {
		return cfg, errors.New("REDIS_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getint64(k string, def int64) int64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
