package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnknownNode indicates an edge or request references a node that is not in the snapshot.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateNode indicates two nodes share an ID.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrSelfLoop indicates an edge connects a node to itself.
	ErrSelfLoop = errors.New("edge connects a node to itself")
)

// Snapshot is the serialisable form of the position graph
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Segment is a drawable edge between two positions
type Segment struct {
	Source Node   `json:"source"`
	Target Node   `json:"target"`
	Name   string `json:"name,omitempty"`
}

// Validate checks that node IDs are unique and every edge joins two distinct known nodes
func (s *Snapshot) Validate() error {
	seen := make(map[NodeID]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		seen[n.ID] = true
	}

	for _, e := range s.Edges {
		if e.Source == e.Target {
			return fmt.Errorf("%w: %q", ErrSelfLoop, e.Source)
		}
		if !seen[e.Source] {
			return fmt.Errorf("%w: edge source %q", ErrUnknownNode, e.Source)
		}
		if !seen[e.Target] {
			return fmt.Errorf("%w: edge target %q", ErrUnknownNode, e.Target)
		}
	}
	return nil
}

// Graph converts the snapshot into an adjacency graph. Isolated nodes are
// present with no neighbors so that they are known to the planner.
func (s *Snapshot) Graph() Graph {
	graph := NewGraph(s.Edges)
	for _, n := range s.Nodes {
		if _, ok := graph[n.ID]; !ok {
			graph[n.ID] = []NodeID{}
		}
	}
	return graph
}

// Lookup returns nodes keyed by ID
func (s *Snapshot) Lookup() map[NodeID]Node {
	lookup := make(map[NodeID]Node, len(s.Nodes))
	for _, n := range s.Nodes {
		lookup[n.ID] = n
	}
	return lookup
}

// Resolve maps IDs to nodes, failing on the first unknown ID
func (s *Snapshot) Resolve(ids []NodeID) ([]Node, error) {
	lookup := s.Lookup()
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		n, ok := lookup[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Index builds a spatial index over the snapshot's nodes
func (s *Snapshot) Index() *NodeIndex {
	return NewNodeIndex(s.Nodes)
}

// Lines returns the snapshot's edges as drawable segments, one per undirected edge
func (s *Snapshot) Lines() []Segment {
	lookup := s.Lookup()
	lines := make([]Segment, 0, len(s.Edges))

	// Edges are undirected, so A-B and B-A are the same line
	seen := make(map[[2]NodeID]bool)

	for _, e := range s.Edges {
		key := [2]NodeID{e.Source, e.Target}
		if e.Target < e.Source {
			key = [2]NodeID{e.Target, e.Source}
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		lines = append(lines, Segment{
			Source: hydrate(lookup, e.Source),
			Target: hydrate(lookup, e.Target),
			Name:   e.Name,
		})
	}

	return lines
}

// SaveSnapshot serializes and saves the snapshot to a JSON file
func SaveSnapshot(snapshot *Snapshot, filename string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// LoadSnapshot reads and validates a snapshot from a JSON file
func LoadSnapshot(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph %s: %w", filename, err)
	}

	return &snapshot, nil
}
