package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineNodes() []Node {
	return []Node{
		{ID: "A", Name: "Closed Guard", X: 0, Y: 0},
		{ID: "B", Name: "Half Guard", X: 1, Y: 0},
		{ID: "C", Name: "Side Control", X: 2, Y: 0},
		{ID: "D", Name: "Mount", X: 3, Y: 0},
	}
}

func TestFindDetailedPath_Line(t *testing.T) {
	all := lineNodes()
	selected := []Node{all[0], all[3]}

	path := FindDetailedPath(lineGraph(), selected, all)
	assert.Equal(t, []NodeID{"A", "B", "C", "D"}, ids(path))
	assert.Equal(t, "Side Control", path[2].Name)

	stats := CalculatePathStats(path)
	assert.Equal(t, PathStats{TotalNodes: 4, TotalTransitions: 3, EstimatedTime: 6}, stats)
}

func TestFindDetailedPath_Disconnected(t *testing.T) {
	graph := Graph{"A": {"B"}, "B": {"A"}, "C": {"D"}, "D": {"C"}}
	selected := []Node{{ID: "A"}, {ID: "C"}}

	path := FindDetailedPath(graph, selected, selected)
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindDetailedPath_DisconnectedOneWayAdjacency(t *testing.T) {
	// B and D only appear as neighbors, never as keys
	graph := Graph{"A": {"B"}, "C": {"D"}}
	selected := []Node{{ID: "A"}, {ID: "C"}}

	path := FindDetailedPath(graph, selected, selected)
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindDetailedPath_TwoWaypointsIsExactlyTheSegment(t *testing.T) {
	graph := randomGraph(3, 30, 60)
	all := make([]Node, 0, len(graph))
	for _, id := range graph.IDs() {
		all = append(all, Node{ID: id, Name: string(id)})
	}

	segment, ok := FindShortestPath(graph, "n1", "n2")
	require.True(t, ok, "fixture graph should connect n1 and n2")

	path := FindDetailedPath(graph, []Node{{ID: "n1"}, {ID: "n2"}}, all)
	assert.Equal(t, segment, ids(path))
}

func TestFindDetailedPath_MultipleWaypointsSkipJoints(t *testing.T) {
	all := lineNodes()
	// Waypoints laid out so the heuristic visits A, C, D
	selected := []Node{all[0], all[2], all[3]}

	path := FindDetailedPath(lineGraph(), selected, all)
	assert.Equal(t, []NodeID{"A", "B", "C", "D"}, ids(path))
	assert.True(t, ValidatePath(path, lineGraph()))
}

func TestFindDetailedPath_Backtracking(t *testing.T) {
	// Star: hub H with leaves L1, L2, L3
	graph := NewGraph([]Edge{
		{Source: "H", Target: "L1"},
		{Source: "H", Target: "L2"},
		{Source: "H", Target: "L3"},
	})
	selected := []Node{
		{ID: "L1", X: 0, Y: 0},
		{ID: "L2", X: 1, Y: 0},
		{ID: "L3", X: 2, Y: 0},
	}

	path := FindDetailedPath(graph, selected, selected)
	assert.Equal(t, []NodeID{"L1", "H", "L2", "H", "L3"}, ids(path))
}

func TestFindDetailedPath_PlaceholderForMissingNode(t *testing.T) {
	all := lineNodes()
	known := []Node{all[0], all[3]}

	path := FindDetailedPath(lineGraph(), known, known)
	require.Len(t, path, 4)
	assert.Equal(t, Node{ID: "B", Name: "Node B"}, path[1])
	assert.Equal(t, Node{ID: "C", Name: "Node C"}, path[2])
}

func TestFindDetailedPath_FewerThanTwoWaypoints(t *testing.T) {
	assert.Empty(t, FindDetailedPath(lineGraph(), nil, lineNodes()))
	assert.Empty(t, FindDetailedPath(lineGraph(), lineNodes()[:1], lineNodes()))
}

func TestFindDetailedPath_Idempotent(t *testing.T) {
	graph := randomGraph(11, 25, 60)
	all := make([]Node, 0, len(graph))
	for i, id := range graph.IDs() {
		all = append(all, Node{ID: id, X: float64(i % 5), Y: float64(i / 5)})
	}
	selected := []Node{all[0], all[7], all[13], all[21]}

	first := FindDetailedPath(graph, selected, all)
	second := FindDetailedPath(graph, selected, all)
	assert.Equal(t, first, second)
}

func TestPlan_ReportsFailingPair(t *testing.T) {
	graph := Graph{"A": {"B"}, "B": {"A"}, "C": {}}
	selected := []Node{{ID: "A", X: 0}, {ID: "B", X: 1}, {ID: "C", X: 2}}

	route, err := Plan(graph, selected, selected)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPath))

	var noPath *NoPathError
	require.True(t, errors.As(err, &noPath))
	assert.Equal(t, NodeID("B"), noPath.From)
	assert.Equal(t, NodeID("C"), noPath.To)
	assert.Empty(t, route.Path)
	assert.Equal(t, []NodeID{"A", "B", "C"}, ids(route.Order))
}

func TestPlan_Stats(t *testing.T) {
	all := lineNodes()
	route, err := Plan(lineGraph(), []Node{all[0], all[3]}, all)
	require.NoError(t, err)
	assert.Equal(t, 6, route.Stats.EstimatedTime)
	assert.Equal(t, []NodeID{"A", "D"}, ids(route.Order))
}
