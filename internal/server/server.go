// Package server wires the query engine, row store and admin flows into
// an HTTP service.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vpetrenko/specsheet/internal/model"
	"github.com/vpetrenko/specsheet/internal/sheet"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "specsheet_session"

// Server holds the service's dependencies. One instance serves all
// requests; everything it holds is safe for concurrent use.
type Server struct {
	cfg          *model.Config
	source       sheet.Source
	sessions     *SessionStore
	loginLimiter *ipLimiter
	log          *slog.Logger
}

// New creates a server around the given row source.
func New(cfg *model.Config, source sheet.Source, log *slog.Logger) *Server {
	return &Server{
		cfg:          cfg,
		source:       source,
		sessions:     NewSessionStore(cfg.Admin.SessionTTL),
		loginLimiter: newIPLimiter(cfg.Admin.LoginPerMinute, 3),
		log:          log,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(s.log), securityHeaders())

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "specsheet"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", s.handleIndex)
	r.GET("/instruments/:slug", s.handleInstrumentPage)
	r.POST("/instruments/:slug", s.handleInstrumentPage)

	api := r.Group("/api/v1")
	{
		api.GET("/instruments", s.handleListInstruments)
		api.POST("/match", s.handleMatch)
		api.GET("/facets", s.handleFacets)
		api.POST("/records", s.handleRecords)
	}

	admin := r.Group("/admin")
	{
		admin.GET("", s.handleLoginPage)
		admin.POST("", s.handleLogin)
		admin.GET("/logout", s.handleLogout)

		authed := admin.Group("", s.requireSession())
		authed.GET("/dashboard", s.handleDashboard)
		authed.GET("/add", s.handleAddPage)
		authed.POST("/add", s.handleAddRow)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requireSession redirects to the login page when the request carries
// no live admin session.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		if !s.sessions.Valid(token) {
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
