package planner

import (
	"errors"
	"fmt"
)

// ErrNoPath is matched by every NoPathError
var ErrNoPath = errors.New("no valid path found")

// NoPathError names the consecutive waypoint pair that could not be connected
type NoPathError struct {
	From NodeID
	To   NodeID
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no valid path found between %q and %q", e.From, e.To)
}

// Is makes errors.Is(err, ErrNoPath) hold for NoPathError values
func (e *NoPathError) Is(target error) bool {
	return target == ErrNoPath
}

// Route is the result of a full planning call
type Route struct {
	ID    string    `json:"id,omitempty"`
	Order []Node    `json:"order"`
	Path  []Node    `json:"path"`
	Stats PathStats `json:"stats"`
}

// Plan orders the selected waypoints, connects each consecutive pair with a
// shortest segment and concatenates the segments into one walk.
//
// Node IDs on the walk are hydrated from all; IDs missing from all become
// placeholder nodes. If any pair cannot be connected the whole plan fails with
// a *NoPathError and no partial path is returned.
func Plan(graph Graph, selected, all []Node) (Route, error) {
	order := FindOptimalPath(selected)
	lookup := make(map[NodeID]Node, len(all))
	for _, n := range all {
		if _, seen := lookup[n.ID]; !seen {
			lookup[n.ID] = n
		}
	}

	var path []Node
	for i := 0; i < len(order)-1; i++ {
		from, to := order[i].ID, order[i+1].ID

		segment, ok := FindShortestPath(graph, from, to)
		if !ok {
			return Route{Order: order}, &NoPathError{From: from, To: to}
		}

		// The first node of every later segment is the joint already appended.
		if len(path) > 0 && segment[0] == path[len(path)-1].ID {
			segment = segment[1:]
		}
		for _, id := range segment {
			path = append(path, hydrate(lookup, id))
		}
	}

	return Route{
		Order: order,
		Path:  path,
		Stats: CalculatePathStats(path),
	}, nil
}

// FindDetailedPath returns the assembled walk through the selected waypoints,
// or an empty slice when some consecutive pair has no connecting route.
func FindDetailedPath(graph Graph, selected, all []Node) []Node {
	route, err := Plan(graph, selected, all)
	if err != nil {
		return []Node{}
	}
	if route.Path == nil {
		return []Node{}
	}
	return route.Path
}

func hydrate(lookup map[NodeID]Node, id NodeID) Node {
	if n, ok := lookup[id]; ok {
		return n
	}
	return Node{ID: id, Name: fmt.Sprintf("Node %s", id)}
}
