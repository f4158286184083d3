package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// routeRequests counts route requests by result (success, no_path, invalid)
	routeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathplanner_route_requests_total",
		Help: "Total route requests by result",
	}, []string{"result"})

	// planDuration tracks time spent inside the planner
	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathplanner_plan_duration_seconds",
		Help:    "Route planning duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	})

	// pathLength tracks the number of positions on returned routes
	pathLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathplanner_path_nodes",
		Help:    "Number of positions on planned routes",
		Buckets: []float64{2, 3, 5, 8, 13, 21, 34, 55},
	})

	graphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathplanner_graph_nodes",
		Help: "Positions in the loaded graph",
	})

	graphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathplanner_graph_edges",
		Help: "Transitions in the loaded graph",
	})

	// graphLoads counts graph replacements by source (file, api, watch) and result
	graphLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathplanner_graph_loads_total",
		Help: "Graph loads by source and result",
	}, []string{"source", "result"})
)
