package planner

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// BoundingBox is an axis-aligned rectangle in layout coordinates
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Point returns the node's layout coordinates
func (n Node) Point() orb.Point {
	return orb.Point{n.X, n.Y}
}

// Distance calculates the Euclidean distance between two nodes' layout coordinates
func (n Node) Distance(other Node) float64 {
	return planar.Distance(n.Point(), other.Point())
}

// Bounds computes the bounding box of a set of nodes
func Bounds(nodes []Node) BoundingBox {
	if len(nodes) == 0 {
		return BoundingBox{}
	}

	box := BoundingBox{
		MinX: nodes[0].X,
		MinY: nodes[0].Y,
		MaxX: nodes[0].X,
		MaxY: nodes[0].Y,
	}

	for _, n := range nodes[1:] {
		box.MinX = min(box.MinX, n.X)
		box.MinY = min(box.MinY, n.Y)
		box.MaxX = max(box.MaxX, n.X)
		box.MaxY = max(box.MaxY, n.Y)
	}

	return box
}

// Contains reports whether the node lies inside the box, borders included
func (b BoundingBox) Contains(n Node) bool {
	return n.X >= b.MinX && n.X <= b.MaxX && n.Y >= b.MinY && n.Y <= b.MaxY
}
