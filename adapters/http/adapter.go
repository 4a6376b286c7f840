// Package http exposes the routes and availability endpoints over a JSON API.
package http

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"award-sync/adapters/upstream"
	"award-sync/core/award"
	"award-sync/core/endpoint"
	"award-sync/core/schema"
	"award-sync/internal/errors"
	"award-sync/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Config holds HTTP adapter configuration
type Config struct {
	// Address to listen on
	Address string `json:"address"`

	// ReadTimeout for requests
	ReadTimeout time.Duration `json:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout time.Duration `json:"write_timeout"`

	// EnableCORS enables CORS headers
	EnableCORS bool `json:"enable_cors"`

	// AllowedOrigins for CORS
	AllowedOrigins []string `json:"allowed_origins"`

	// Version is reported in response metadata
	Version string `json:"version"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:        ":8080",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
	}
}

// StatsProvider reports upstream fetch counters.
type StatsProvider interface {
	Stats() upstream.Stats
}

// Adapter is the HTTP adapter
type Adapter struct {
	endpoints *endpoint.Endpoints
	stats     StatsProvider
	config    *Config
	logger    *zap.Logger
	server    *http.Server

	// Metrics
	requestCount int64
	errorCount   int64
	mu           sync.RWMutex
}

// New creates a new HTTP adapter. stats may be nil.
func New(endpoints *endpoint.Endpoints, stats StatsProvider, config *Config, logger *zap.Logger) *Adapter {
	if config == nil {
		config = DefaultConfig()
	}

	return &Adapter{
		endpoints: endpoints,
		stats:     stats,
		config:    config,
		logger:    logging.Or(logger).Named("http"),
	}
}

// Router returns the HTTP handler
func (a *Adapter) Router() http.Handler {
	r := gin.New()
	r.Use(a.requestIDMiddleware(), a.loggingMiddleware(), a.recoveryMiddleware())
	if a.config.EnableCORS {
		r.Use(cors.New(a.corsConfig()))
	}

	r.NoRoute(func(c *gin.Context) {
		a.writeError(c, errors.NotFound("route", c.Request.URL.Path))
	})

	// Health endpoints
	r.GET("/health", a.handleHealth)
	r.GET("/ready", a.handleReady)

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		v1.GET("/routes", a.handleRoutes)
		v1.GET("/availability", a.handleAvailability)
		v1.GET("/sources", a.handleSources)
		v1.GET("/schemas/:name", a.handleSchema)
	}

	return r
}

// Start starts the HTTP server
func (a *Adapter) Start() error {
	server := &http.Server{
		Addr:         a.config.Address,
		Handler:      a.Router(),
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}
	a.mu.Lock()
	a.server = server
	a.mu.Unlock()

	a.logger.Info("listening", zap.String("address", a.config.Address))
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *Adapter) Shutdown(ctx context.Context) error {
	a.mu.RLock()
	server := a.server
	a.mu.RUnlock()

	if server != nil {
		return server.Shutdown(ctx)
	}
	return nil
}

// RowsResponse is the success envelope of the data endpoints
type RowsResponse struct {
	Success  bool             `json:"success"`
	Schema   string           `json:"schema"`
	Count    int              `json:"count"`
	Rows     []map[string]any `json:"rows"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata is response context
type ResponseMetadata struct {
	RequestID  string    `json:"request_id"`
	DurationMs int64     `json:"duration_ms"`
	Version    string    `json:"version,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Type    string `json:"type"`
}

// Handler implementations

func (a *Adapter) handleHealth(c *gin.Context) {
	body := gin.H{"status": "healthy"}

	a.mu.RLock()
	body["requests"] = a.requestCount
	body["errors"] = a.errorCount
	a.mu.RUnlock()

	if a.stats != nil {
		body["upstream"] = a.stats.Stats()
	}
	c.JSON(http.StatusOK, body)
}

func (a *Adapter) handleReady(c *gin.Context) {
	if a.endpoints == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (a *Adapter) handleRoutes(c *gin.Context) {
	start := time.Now()

	result, err := a.endpoints.Routes(a.requestContext(c))
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.writeRows(c, result.Schema, result.Rows, start)
}

func (a *Adapter) handleAvailability(c *gin.Context) {
	start := time.Now()

	params, err := availabilityParams(c)
	if err != nil {
		a.writeError(c, err)
		return
	}

	result, err := a.endpoints.Availability(a.requestContext(c), params)
	if err != nil {
		a.writeError(c, err)
		return
	}
	a.writeRows(c, result.Schema, result.Rows, start)
}

func (a *Adapter) handleSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sources": endpoint.SourceParam.Autocomplete,
	})
}

func (a *Adapter) handleSchema(c *gin.Context) {
	s, ok := schema.Lookup(c.Param("name"))
	if !ok {
		a.writeError(c, errors.NotFound("schema", c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, s)
}

func availabilityParams(c *gin.Context) (endpoint.AvailabilityParams, error) {
	params := endpoint.AvailabilityParams{
		Source: award.Source(strings.TrimSpace(c.Query("source"))),
	}
	if params.Source == "" {
		return params, errors.Input("query parameter source is required")
	}

	start, end := strings.TrimSpace(c.Query("start")), strings.TrimSpace(c.Query("end"))
	switch {
	case start == "" && end == "":
	case start == "" || end == "":
		return params, errors.Input("start and end must be given together")
	default:
		dates, err := award.NewDateRange(start, end)
		if err != nil {
			return params, errors.Wrap(errors.TypeInput, "invalid date range", err)
		}
		params.Dates = &dates
	}
	return params, nil
}

// Middleware

func (a *Adapter) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range a.config.AllowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = a.config.AllowedOrigins
	return cfg
}

func (a *Adapter) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

func (a *Adapter) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		a.mu.Lock()
		a.requestCount++
		if status >= http.StatusInternalServerError {
			a.errorCount++
		}
		a.mu.Unlock()

		a.logger.Info("request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

func (a *Adapter) recoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				a.logger.Error("panic serving request",
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "internal server error",
					Type:  string(errors.TypeInternal),
				})
			}
		}()
		c.Next()
	}
}

// Helpers

func (a *Adapter) requestContext(c *gin.Context) context.Context {
	return endpoint.WithRequestID(c.Request.Context(), c.GetString(requestIDKey))
}

func (a *Adapter) writeRows(c *gin.Context, s *schema.ObjectSchema, rows any, start time.Time) {
	projected, err := s.ProjectRows(rows)
	if err != nil {
		a.writeError(c, errors.Internal("project rows", err))
		return
	}

	c.JSON(http.StatusOK, RowsResponse{
		Success: true,
		Schema:  s.Name,
		Count:   len(projected),
		Rows:    projected,
		Metadata: ResponseMetadata{
			RequestID:  c.GetString(requestIDKey),
			DurationMs: time.Since(start).Milliseconds(),
			Version:    a.config.Version,
			Timestamp:  time.Now().UTC(),
		},
	})
}

func (a *Adapter) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Warn("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	message := err.Error()
	if appErr, ok := errors.As(err); ok {
		message = appErr.Message
		if appErr.Cause != nil {
			message += ": " + appErr.Cause.Error()
		}
	}
	c.JSON(status, ErrorResponse{
		Error: message,
		Type:  string(errors.TypeOf(err)),
	})
}

func statusFor(err error) int {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch errors.TypeOf(err) {
	case errors.TypeInput:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	case errors.TypeUpstream, errors.TypeNetwork, errors.TypeParsing:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
