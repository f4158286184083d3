package planner

// MinutesPerTransition is the drilling time estimate for a single transition
const MinutesPerTransition = 2

// PathStats summarises a path
type PathStats struct {
	TotalNodes       int `json:"totalNodes"`
	TotalTransitions int `json:"totalTransitions"`
	EstimatedTime    int `json:"estimatedTime"` // minutes
}

// CalculatePathStats derives node/transition counts and a time estimate.
// Paths with fewer than two nodes yield zero stats.
func CalculatePathStats(path []Node) PathStats {
	if len(path) < 2 {
		return PathStats{}
	}

	transitions := len(path) - 1
	return PathStats{
		TotalNodes:       len(path),
		TotalTransitions: transitions,
		EstimatedTime:    transitions * MinutesPerTransition,
	}
}
