package planner

// ValidatePath checks that every consecutive pair is a direct edge or, failing
// that, still connected through the graph. Paths shorter than two are valid.
func ValidatePath(path []Node, graph Graph) bool {
	for i := 0; i+1 < len(path); i++ {
		current, next := path[i].ID, path[i+1].ID
		if graph.Adjacent(current, next) {
			continue
		}
		if _, ok := FindShortestPath(graph, current, next); !ok {
			return false
		}
	}
	return true
}
