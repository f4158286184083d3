package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(nodes []Node) []NodeID {
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestFindOptimalPath_FewerThanTwo(t *testing.T) {
	assert.Empty(t, FindOptimalPath(nil))

	single := []Node{{ID: "A", X: 5, Y: 5}}
	assert.Equal(t, single, FindOptimalPath(single))
}

func TestFindOptimalPath_NearestNeighbor(t *testing.T) {
	// A at origin, C close to A, B far away, D close to B
	selected := []Node{
		{ID: "A", X: 0, Y: 0},
		{ID: "B", X: 10, Y: 0},
		{ID: "C", X: 1, Y: 1},
		{ID: "D", X: 11, Y: 1},
	}

	order := FindOptimalPath(selected)
	assert.Equal(t, []NodeID{"A", "C", "B", "D"}, ids(order))
}

func TestFindOptimalPath_Triangle(t *testing.T) {
	// From A, C (distance 3) beats B (distance 4); from C, B is the only one left
	selected := []Node{
		{ID: "A", X: 0, Y: 0},
		{ID: "B", X: 4, Y: 0},
		{ID: "C", X: 0, Y: 3},
	}

	order := FindOptimalPath(selected)
	assert.Equal(t, []NodeID{"A", "C", "B"}, ids(order))
}

func TestFindOptimalPath_StartsWithFirstSelected(t *testing.T) {
	selected := []Node{
		{ID: "far", X: 100, Y: 100},
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 1, Y: 0},
	}

	order := FindOptimalPath(selected)
	assert.Equal(t, NodeID("far"), order[0].ID)
	assert.Equal(t, []NodeID{"far", "b", "a"}, ids(order))
}

func TestFindOptimalPath_TiesKeepInputOrder(t *testing.T) {
	// Missing coordinates all default to the origin, so every candidate ties
	selected := []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}

	order := FindOptimalPath(selected)
	assert.Equal(t, []NodeID{"A", "B", "C", "D"}, ids(order))
}

func TestFindOptimalPath_DoesNotMutateInput(t *testing.T) {
	selected := []Node{
		{ID: "A", X: 0, Y: 0},
		{ID: "B", X: 10, Y: 0},
		{ID: "C", X: 1, Y: 0},
	}
	before := append([]Node(nil), selected...)

	FindOptimalPath(selected)
	assert.Equal(t, before, selected)
}
