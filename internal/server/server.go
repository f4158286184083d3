// Package server exposes the path planner over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	planner "path-planner"
	"path-planner/internal/config"
	"path-planner/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// graphState is an immutable view of the loaded graph. It is replaced as a
// whole, never modified in place.
type graphState struct {
	snapshot *planner.Snapshot
	graph    planner.Graph
	index    *planner.NodeIndex
	loadedAt time.Time
}

// Server holds the current graph and serves planning requests against it
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	router *gin.Engine

	mu    sync.RWMutex
	state *graphState
}

// New creates a server with no graph loaded
func New(cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.Middleware(s.logger))
	router.Use(corsMiddleware(s.cfg.Server.AllowedOrigins))

	router.GET("/health", s.handleHealth)
	router.POST("/graph", s.handleBuildGraph)
	router.GET("/graph/lines", s.handleGraphLines)
	router.POST("/route", s.handleRoute)
	router.POST("/route/validate", s.handleValidateRoute)
	router.POST("/route/geojson", s.handleRouteGeoJSON)
	router.POST("/nearest", s.handleNearest)

	if s.cfg.Metrics.Enabled {
		router.GET(s.cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	return router
}

// current returns the loaded graph, or nil
func (s *Server) current() *graphState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// HasGraph reports whether a graph is loaded
func (s *Server) HasGraph() bool {
	return s.current() != nil
}

var (
	// errGraphLoaded is returned when a graph is loaded and replacement was not forced
	errGraphLoaded = errors.New("graph is already loaded, set force to replace it")

	// errSaveGraph wraps failures to persist a graph before it is installed
	errSaveGraph = errors.New("failed to save graph")
)

// SetSnapshot validates the snapshot and makes it the current graph
func (s *Server) SetSnapshot(snapshot *planner.Snapshot, source string) error {
	return s.replaceSnapshot(snapshot, source, true, nil)
}

// replaceSnapshot installs the snapshot under the state lock. Without force it
// fails with errGraphLoaded when a graph is already loaded. When save is set it
// runs after validation and before the swap, so a failed save leaves the
// previous graph in place.
func (s *Server) replaceSnapshot(snapshot *planner.Snapshot, source string, force bool, save func(*planner.Snapshot) error) error {
	if err := snapshot.Validate(); err != nil {
		graphLoads.WithLabelValues(source, "invalid").Inc()
		return err
	}

	graph := snapshot.Graph()
	state := &graphState{
		snapshot: snapshot,
		graph:    graph,
		index:    snapshot.Index(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != nil && !force {
		graphLoads.WithLabelValues(source, "conflict").Inc()
		return errGraphLoaded
	}
	if save != nil {
		if err := save(snapshot); err != nil {
			graphLoads.WithLabelValues(source, "error").Inc()
			return fmt.Errorf("%w: %w", errSaveGraph, err)
		}
	}

	state.loadedAt = time.Now()
	s.state = state

	graphNodes.Set(float64(len(snapshot.Nodes)))
	graphEdges.Set(float64(graph.EdgeCount()))
	graphLoads.WithLabelValues(source, "success").Inc()

	s.logger.Info("graph loaded",
		"source", source,
		"nodes", len(snapshot.Nodes),
		"edges", graph.EdgeCount(),
	)
	return nil
}

// LoadGraphFile loads a JSON or GeoJSON snapshot and makes it current.
// On failure the previously loaded graph stays in place.
func (s *Server) LoadGraphFile(path, source string) error {
	snapshot, err := planner.LoadSnapshotFile(path)
	if err != nil {
		graphLoads.WithLabelValues(source, "error").Inc()
		return err
	}
	return s.SetSnapshot(snapshot, source)
}

// Run serves HTTP until ctx is cancelled, watching the graph file when
// configured, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if s.cfg.Graph.Watch && s.cfg.Graph.File != "" {
		g.Go(func() error {
			return s.watchGraphFile(ctx, s.cfg.Graph.File)
		})
	}

	return g.Wait()
}
