package planner

import (
	"cmp"
	"slices"

	"github.com/dhconnelly/rtreego"
)

// pointExtent is the side length of the box stored for a node in the R-tree
const pointExtent = 1e-9

// nodeEntry wraps a node for R-tree storage
type nodeEntry struct {
	Node Node
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// NodeIndex answers spatial queries over node layout coordinates
type NodeIndex struct {
	tree *rtreego.Rtree
}

// NewNodeIndex creates a spatial index over the given nodes
func NewNodeIndex(nodes []Node) *NodeIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, n := range nodes {
		bbox, err := rtreego.NewRect(
			rtreego.Point{n.X, n.Y},
			[]float64{pointExtent, pointExtent},
		)
		if err == nil {
			tree.Insert(&nodeEntry{Node: n, BBox: bbox})
		}
	}

	return &NodeIndex{tree: tree}
}

// Size returns the number of indexed nodes
func (ni *NodeIndex) Size() int {
	return ni.tree.Size()
}

// Nearest returns the node closest to (x, y)
func (ni *NodeIndex) Nearest(x, y float64) (Node, bool) {
	if ni.tree.Size() == 0 {
		return Node{}, false
	}

	item := ni.tree.NearestNeighbor(rtreego.Point{x, y})
	if item == nil {
		return Node{}, false
	}
	return item.(*nodeEntry).Node, true
}

// Within returns nodes that lie inside the given box, ordered by ID
func (ni *NodeIndex) Within(box BoundingBox) []Node {
	width := max(box.MaxX-box.MinX, pointExtent)
	height := max(box.MaxY-box.MinY, pointExtent)

	bbox, err := rtreego.NewRect(
		rtreego.Point{box.MinX, box.MinY},
		[]float64{width, height},
	)
	if err != nil {
		return []Node{}
	}

	results := ni.tree.SearchIntersect(bbox)
	nodes := make([]Node, 0, len(results))

	for _, item := range results {
		entry := item.(*nodeEntry)
		if box.Contains(entry.Node) {
			nodes = append(nodes, entry.Node)
		}
	}

	slices.SortFunc(nodes, func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
	return nodes
}
