package planner

import "slices"

// FindOptimalPath orders the selected nodes with the nearest-neighbor heuristic.
//
// The tour starts at the first selected node and repeatedly appends the
// remaining node closest (Euclidean, layout coordinates) to the last one placed.
// Ties go to the earliest candidate in input order. This is an approximation of
// the travelling-salesman order: there is no backtracking or 2-opt pass, so the
// result is not guaranteed to be the shortest tour.
//
// Selections of fewer than two nodes are returned unchanged.
func FindOptimalPath(selected []Node) []Node {
	if len(selected) < 2 {
		return selected
	}

	remaining := slices.Clone(selected[1:])
	order := make([]Node, 0, len(selected))
	current := selected[0]
	order = append(order, current)

	for len(remaining) > 0 {
		nearest := 0
		minDistance := current.Distance(remaining[0])
		for i := 1; i < len(remaining); i++ {
			if d := current.Distance(remaining[i]); d < minDistance {
				minDistance = d
				nearest = i
			}
		}

		current = remaining[nearest]
		order = append(order, current)
		remaining = slices.Delete(remaining, nearest, nearest+1)
	}

	return order
}
