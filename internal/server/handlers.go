package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	planner "path-planner"
)

// Error codes returned in ErrorResponse.Code
const (
	codeInvalidRequest  = "INVALID_REQUEST"
	codeGraphNotLoaded  = "GRAPH_NOT_LOADED"
	codeGraphExists     = "GRAPH_EXISTS"
	codeInvalidGraph    = "INVALID_GRAPH"
	codeUnknownPosition = "UNKNOWN_POSITION"
	codeTooManyStops    = "TOO_MANY_WAYPOINTS"
	codeSaveFailed      = "SAVE_FAILED"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports whether a graph is loaded
type HealthResponse struct {
	Status   string     `json:"status"`
	HasGraph bool       `json:"hasGraph"`
	NumNodes int        `json:"numNodes"`
	NumEdges int        `json:"numEdges"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

// BuildGraphRequest replaces the position graph
type BuildGraphRequest struct {
	Nodes      []planner.Node `json:"nodes" binding:"required,min=1"`
	Edges      []planner.Edge `json:"edges"`
	Force      bool           `json:"force,omitempty"`      // Set to true to replace a loaded graph
	SaveToFile bool           `json:"saveToFile,omitempty"` // Write to the configured graph file
}

// BuildGraphResponse summarises the loaded graph
type BuildGraphResponse struct {
	Success     bool                `json:"success"`
	NumNodes    int                 `json:"numNodes"`
	NumEdges    int                 `json:"numEdges"`
	BoundingBox planner.BoundingBox `json:"boundingBox"`
}

// GraphLinesResponse carries edges for drawing the graph
type GraphLinesResponse struct {
	Success  bool              `json:"success"`
	Lines    []planner.Segment `json:"lines"`
	NumNodes int               `json:"numNodes"`
	NumEdges int               `json:"numEdges"`
}

// RouteRequest selects the positions a route must visit
type RouteRequest struct {
	Waypoints []planner.NodeID `json:"waypoints" binding:"required,min=2"`
}

// RouteResponse is the planned route, or success=false with a message when
// the waypoints cannot be connected
type RouteResponse struct {
	RouteID string            `json:"routeId,omitempty"`
	Order   []planner.Node    `json:"order"`
	Path    []planner.Node    `json:"path"`
	Stats   planner.PathStats `json:"stats"`
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
}

// ValidateRequest carries a previously computed walk
type ValidateRequest struct {
	Path []planner.NodeID `json:"path"`
}

// ValidateResponse reports whether the walk still holds on the current graph
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// NearestRequest is a point in layout coordinates
type NearestRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NearestResponse is the position closest to the requested point
type NearestResponse struct {
	Node     planner.Node `json:"node"`
	Distance float64      `json:"distance"`
}

func abortWithError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// requireGraph returns the current graph or writes a 503
func (s *Server) requireGraph(c *gin.Context) (*graphState, bool) {
	state := s.current()
	if state == nil {
		abortWithError(c, http.StatusServiceUnavailable, codeGraphNotLoaded,
			errors.New("graph not loaded, POST /graph first"))
		return nil, false
	}
	return state, true
}

// GET /health
func (s *Server) handleHealth(c *gin.Context) {
	resp := HealthResponse{Status: "waiting for graph"}
	if state := s.current(); state != nil {
		resp = HealthResponse{
			Status:   "ready",
			HasGraph: true,
			NumNodes: len(state.snapshot.Nodes),
			NumEdges: state.graph.EdgeCount(),
			LoadedAt: &state.loadedAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// POST /graph
func (s *Server) handleBuildGraph(c *gin.Context) {
	var req BuildGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	if req.SaveToFile && s.cfg.Graph.File == "" {
		abortWithError(c, http.StatusBadRequest, codeSaveFailed, errors.New("no graph file configured"))
		return
	}

	var save func(*planner.Snapshot) error
	if req.SaveToFile {
		save = func(snapshot *planner.Snapshot) error {
			return planner.SaveSnapshot(snapshot, s.cfg.Graph.File)
		}
	}

	snapshot := &planner.Snapshot{Nodes: req.Nodes, Edges: req.Edges}
	err := s.replaceSnapshot(snapshot, "api", req.Force, save)
	switch {
	case err == nil:
	case errors.Is(err, errGraphLoaded):
		abortWithError(c, http.StatusConflict, codeGraphExists, err)
		return
	case errors.Is(err, errSaveGraph):
		s.logger.Error("failed to save graph", "file", s.cfg.Graph.File, "error", err)
		abortWithError(c, http.StatusInternalServerError, codeSaveFailed, err)
		return
	default:
		abortWithError(c, http.StatusBadRequest, codeInvalidGraph, err)
		return
	}

	c.JSON(http.StatusOK, BuildGraphResponse{
		Success:     true,
		NumNodes:    len(snapshot.Nodes),
		NumEdges:    snapshot.Graph().EdgeCount(),
		BoundingBox: planner.Bounds(snapshot.Nodes),
	})
}

// GET /graph/lines
func (s *Server) handleGraphLines(c *gin.Context) {
	state, ok := s.requireGraph(c)
	if !ok {
		return
	}

	lines := state.snapshot.Lines()
	c.JSON(http.StatusOK, GraphLinesResponse{
		Success:  true,
		Lines:    lines,
		NumNodes: len(state.snapshot.Nodes),
		NumEdges: len(lines),
	})
}

// planOutcome is a planned route or the reason the waypoints could not be connected
type planOutcome struct {
	route planner.Route
	err   error
}

// planRequest binds and plans a RouteRequest. When it returns false the error
// response has already been written.
func (s *Server) planRequest(c *gin.Context) (planOutcome, bool) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		routeRequests.WithLabelValues("invalid").Inc()
		abortWithError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return planOutcome{}, false
	}
	if len(req.Waypoints) > s.cfg.Planner.MaxWaypoints {
		routeRequests.WithLabelValues("invalid").Inc()
		abortWithError(c, http.StatusBadRequest, codeTooManyStops,
			fmt.Errorf("at most %d waypoints allowed, got %d", s.cfg.Planner.MaxWaypoints, len(req.Waypoints)))
		return planOutcome{}, false
	}

	state, ok := s.requireGraph(c)
	if !ok {
		return planOutcome{}, false
	}

	selected, err := state.snapshot.Resolve(req.Waypoints)
	if err != nil {
		routeRequests.WithLabelValues("invalid").Inc()
		abortWithError(c, http.StatusBadRequest, codeUnknownPosition, err)
		return planOutcome{}, false
	}

	start := time.Now()
	route, planErr := planner.Plan(state.graph, selected, state.snapshot.Nodes)
	planDuration.Observe(time.Since(start).Seconds())

	if planErr != nil {
		routeRequests.WithLabelValues("no_path").Inc()
		s.logger.Info("no path found", "waypoints", len(selected), "error", planErr)
		return planOutcome{route: route, err: planErr}, true
	}

	route.ID = uuid.NewString()
	routeRequests.WithLabelValues("success").Inc()
	pathLength.Observe(float64(len(route.Path)))
	s.logger.Debug("route planned",
		"route_id", route.ID,
		"waypoints", len(selected),
		"nodes", route.Stats.TotalNodes,
		"transitions", route.Stats.TotalTransitions,
	)
	return planOutcome{route: route}, true
}

// POST /route
func (s *Server) handleRoute(c *gin.Context) {
	outcome, ok := s.planRequest(c)
	if !ok {
		return
	}
	route, planErr := outcome.route, outcome.err

	resp := RouteResponse{
		RouteID: route.ID,
		Order:   route.Order,
		Path:    route.Path,
		Stats:   route.Stats,
		Success: planErr == nil,
	}
	if resp.Order == nil {
		resp.Order = []planner.Node{}
	}
	if resp.Path == nil {
		resp.Path = []planner.Node{}
	}
	if planErr != nil {
		resp.Message = planErr.Error()
	}

	c.JSON(http.StatusOK, resp)
}

// POST /route/geojson
func (s *Server) handleRouteGeoJSON(c *gin.Context) {
	outcome, ok := s.planRequest(c)
	if !ok {
		return
	}
	route, planErr := outcome.route, outcome.err
	if planErr != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: planErr.Error(), Code: "NO_PATH"})
		return
	}

	data, err := planner.RouteFeatureCollection(route).MarshalJSON()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "ENCODE_FAILED", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// POST /route/validate
func (s *Server) handleValidateRoute(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	state, ok := s.requireGraph(c)
	if !ok {
		return
	}

	path := make([]planner.Node, len(req.Path))
	for i, id := range req.Path {
		path[i] = planner.Node{ID: id}
	}
	c.JSON(http.StatusOK, ValidateResponse{Valid: planner.ValidatePath(path, state.graph)})
}

// POST /nearest
func (s *Server) handleNearest(c *gin.Context) {
	var req NearestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	state, ok := s.requireGraph(c)
	if !ok {
		return
	}

	n, found := state.index.Nearest(req.X, req.Y)
	if !found {
		abortWithError(c, http.StatusNotFound, codeUnknownPosition, errors.New("graph has no positions"))
		return
	}

	probe := planner.Node{X: req.X, Y: req.Y}
	c.JSON(http.StatusOK, NearestResponse{Node: n, Distance: probe.Distance(n)})
}
