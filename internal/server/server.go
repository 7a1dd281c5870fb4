// Package server exposes the sync and task creation flows over a local HTTP API
// for an editor integration.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clicknote/internal/notesync"
	"clicknote/internal/taskflow"
)

// Deps are the collaborators of the API.
type Deps struct {
	Tasks   notesync.TaskLister
	Creator taskflow.Creator
	Syncer  taskflow.Syncer
	// Lists provides the default destination list for POST /api/tasks.
	Lists taskflow.ListSource

	LinkDelay      time.Duration
	LegacyPriority bool
	Location       *time.Location
	Logger         *slog.Logger
}

// Server is the local HTTP API.
type Server struct {
	deps   Deps
	log    *slog.Logger
	router *gin.Engine
}

// New creates a server and registers its routes.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}

	router := gin.New()
	s := &Server{
		deps:   deps,
		log:    deps.Logger,
		router: router,
	}

	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/lists/:id/tasks", s.handleListTasks)
		api.GET("/lists/:id/table", s.handleListTable)
		api.POST("/lists/:id/sync", s.handleSync)
		api.POST("/tasks", s.handleCreateTask)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
