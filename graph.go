package planner

import "sort"

// NodeID identifies a position in the graph
type NodeID string

// Node represents a position. X and Y are optional layout coordinates and
// are only used by the visiting-order heuristic.
type Node struct {
	ID       NodeID  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Edge represents a technique or transition connecting two positions
type Edge struct {
	Source NodeID `json:"source"`
	Target NodeID `json:"target"`
	Name   string `json:"name,omitempty"`
}

// Graph is an undirected adjacency list keyed by node ID
type Graph map[NodeID][]NodeID

// NewGraph builds an adjacency graph from an edge list, adding both directions
// for every edge.
func NewGraph(edges []Edge) Graph {
	graph := make(Graph)
	for _, edge := range edges {
		graph[edge.Source] = append(graph[edge.Source], edge.Target)
		graph[edge.Target] = append(graph[edge.Target], edge.Source)
	}
	return graph
}

// Adjacent reports whether a and b share an edge
func (g Graph) Adjacent(a, b NodeID) bool {
	for _, neighbor := range g[a] {
		if neighbor == b {
			return true
		}
	}
	return false
}

// IDs returns every node ID known to the graph in sorted order
func (g Graph) IDs() []NodeID {
	ids := make([]NodeID, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EdgeCount returns the number of undirected edges
func (g Graph) EdgeCount() int {
	total := 0
	for _, neighbors := range g {
		total += len(neighbors)
	}
	return total / 2
}
