package adminapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdnsbridge/mdnsbridge/internal/listener"
)

// Server is the admin HTTP server: health, stats, and the recent-activity
// debug page. It never touches the multicast socket directly, only the
// listener.Stats counters and a RecentBuffer fed by the publisher side.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds a Server bound to host:port. stats may be nil (all counters
// report zero); recent may be nil (the debug page always reports no
// recent activity).
func New(host string, port int, logger *slog.Logger, stats *listener.Stats, recent *RecentBuffer) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(slogRequestLogger(logger))

	RegisterRoutes(engine, NewHandler(stats, recent))

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Engine exposes the underlying gin.Engine, mainly for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Addr returns the bound address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// ListenAndServe blocks serving the admin API until the server is shut down.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the admin API.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// slogRequestLogger mirrors the teacher's middleware.SlogRequestLogger
// (internal/api/middleware/logging.go), reproduced here rather than
// imported to keep internal/adminapi independent of the dropped
// internal/api package.
func slogRequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		if logger != nil {
			logger.Info("admin api request",
				"method", method,
				"path", path,
				"status", c.Writer.Status(),
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", c.ClientIP(),
			)
		}
	}
}
