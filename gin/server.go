// Package gin serves the record processing endpoint over HTTP.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/feedclip"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// DefaultAddr is the address the browser extension posts to.
const DefaultAddr = "localhost:8000"

var setMode sync.Once

// Server exposes a feedclip.RecordProcessor over HTTP.
type Server struct {
	router    *gin.Engine
	server    *http.Server
	processor feedclip.RecordProcessor
	logger    *slog.Logger
}

// NewServer creates a new Server. Any origin may call it, since its
// callers are browser extensions running on feed pages.
func NewServer(processor feedclip.RecordProcessor, logger *slog.Logger) *Server {
	setMode.Do(func() { gin.SetMode(gin.ReleaseMode) })

	s := &Server{
		router:    gin.New(),
		processor: processor,
		logger:    logger,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.logRequests)

	s.router.GET("/health", s.handleHealth)
	s.router.POST("/process", s.handleProcess)

	s.server = &http.Server{
		Handler:           cors.AllowAll().Handler(s.router),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the server's HTTP handler including CORS handling.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("serving", "addr", ln.Addr().String())
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleProcess(c *gin.Context) {
	var rec feedclip.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.error(c, feedclip.Errorf(feedclip.EINVALID, "invalid request body: %v", err))
		return
	}

	receipt, err := s.processor.Process(c.Request.Context(), &rec)
	if err != nil {
		s.error(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// error writes err as {"detail": message} with the status of its code.
func (s *Server) error(c *gin.Context, err error) {
	code := feedclip.ErrorCode(err)
	if code == feedclip.EINTERNAL {
		_ = c.Error(err)
	}
	c.JSON(ErrorStatusCode(code), gin.H{"detail": feedclip.ErrorMessage(err)})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()

	attrs := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	}
	if len(c.Errors) > 0 {
		s.logger.Error("http request", append(attrs, "err", c.Errors.String())...)
		return
	}
	s.logger.Info("http request", attrs...)
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	feedclip.ECONFLICT:    http.StatusConflict,
	feedclip.EINVALID:     http.StatusBadRequest,
	feedclip.ENOTFOUND:    http.StatusNotFound,
	feedclip.EUNAVAILABLE: http.StatusServiceUnavailable,
	feedclip.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
