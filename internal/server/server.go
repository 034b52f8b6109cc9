// Package server exposes the workspace and the allocator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/GlassCut/internal/engine"
	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/piwi3910/GlassCut/internal/project"
	"k8s.io/klog/v2"
)

const shutdownTimeout = 5 * time.Second

// Server serves the JSON API backed by a workspace store.
type Server struct {
	store     *project.Store
	cfg       model.AppConfig
	optimizer *engine.Optimizer
}

// New returns a server using the given store and settings.
func New(store *project.Store, cfg model.AppConfig) *Server {
	return &Server{
		store:     store,
		cfg:       cfg,
		optimizer: engine.New(),
	}
}

// Router builds the gin engine with all API routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)

	api.GET("/inventory", s.handleListInventory)
	api.POST("/inventory", s.handleAddScrap)
	api.DELETE("/inventory/:id", s.handleDeleteScrap)

	api.GET("/orders", s.handleListOrders)
	api.POST("/orders", s.handleAddOrder)
	api.DELETE("/orders/:id", s.handleDeleteOrder)

	api.POST("/optimize", s.handleOptimize)
	api.POST("/quick-check", s.handleQuickCheck)
	api.POST("/compare", s.handleCompare)
	api.GET("/report/chart", s.handleChart)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		klog.InfoS("Listening", "addr", addr, "workspace", s.store.Path())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		klog.InfoS("Shutting down", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func abortError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		klog.ErrorS(err, "Request failed", "path", c.FullPath())
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
