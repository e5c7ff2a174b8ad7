// Package server provides the browser front end: a single page and a small
// JSON API served with gin. The API key is sent by the page on every
// request and lives only in that request's keyring.
package server

import (
	"context"
	_ "embed"
	"net/http"
	"slices"
	"time"

	"github.com/fwojciec/promptsmith"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// KeyHeader carries the caller's Gemini API key.
const KeyHeader = "X-Api-Key"

//go:embed static/index.html
var indexHTML []byte

// GenerateFunc runs one generate action for a request's keyring.
type GenerateFunc func(ctx context.Context, keys *promptsmith.Keyring, role, task string) (promptsmith.Result, error)

// Option configures a [Server].
type Option func(*Server)

// WithRateLimit caps generate requests across all callers to perMinute.
// Zero or less means unlimited.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.perMinute = perMinute
			s.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
		}
	}
}

// Server routes browser requests to the generate pipeline.
type Server struct {
	router    *gin.Engine
	generate  GenerateFunc
	logger    *zap.Logger
	positions []string

	limiter   *rate.Limiter
	perMinute int
	flight    singleflight.Group
}

// New creates a Server. positions are offered by the page's select.
func New(generate GenerateFunc, logger *zap.Logger, positions []string, opts ...Option) *Server {
	s := &Server{
		generate:  generate,
		logger:    logger,
		positions: slices.Clone(positions),
	}
	for _, o := range opts {
		o(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))
	r.GET("/", s.index)
	r.GET("/health", s.health)
	api := r.Group("/api")
	api.GET("/positions", s.listPositions)
	api.POST("/generate", s.handleGenerate)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) listPositions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"positions": s.positions,
		"other":     promptsmith.OtherPosition,
	})
}
