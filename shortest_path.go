package planner

import (
	"container/heap"
)

// searchNode is an entry in the Dijkstra frontier
type searchNode struct {
	NodeID   NodeID
	Distance int
	Seq      int // insertion order, breaks distance ties
	Index    int // index in the heap
}

// priorityQueue implements heap.Interface ordered by (Distance, Seq)
type priorityQueue []*searchNode

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].Distance != pq[j].Distance {
		return pq[i].Distance < pq[j].Distance
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *priorityQueue) Push(x any) {
	n := len(*pq)
	node := x.(*searchNode)
	node.Index = n
	*pq = append(*pq, node)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*pq = old[0 : n-1]
	return node
}

// FindShortestPath returns a minimum-hop walk from start to end using
// Dijkstra's algorithm over unit edge weights.
//
// The boolean is false when the endpoints are not connected or either endpoint
// is unknown to the graph. start == end is a zero-hop success returning [start].
func FindShortestPath(graph Graph, start, end NodeID) ([]NodeID, bool) {
	if _, ok := graph[start]; !ok {
		return nil, false
	}
	if _, ok := graph[end]; !ok {
		return nil, false
	}
	if start == end {
		return []NodeID{start}, true
	}

	distance := map[NodeID]int{start: 0}
	previous := make(map[NodeID]NodeID)
	visited := make(map[NodeID]bool)
	open := make(map[NodeID]*searchNode)

	frontier := &priorityQueue{}
	heap.Init(frontier)

	seq := 0
	startNode := &searchNode{NodeID: start}
	heap.Push(frontier, startNode)
	open[start] = startNode

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(*searchNode)
		delete(open, current.NodeID)

		if current.NodeID == end {
			return reconstructPath(previous, start, end), true
		}
		visited[current.NodeID] = true

		for _, neighborID := range graph[current.NodeID] {
			if visited[neighborID] {
				continue
			}

			tentative := current.Distance + 1
			if known, ok := distance[neighborID]; ok && tentative >= known {
				continue
			}
			distance[neighborID] = tentative
			previous[neighborID] = current.NodeID

			if neighbor, queued := open[neighborID]; queued {
				neighbor.Distance = tentative
				heap.Fix(frontier, neighbor.Index)
				continue
			}

			seq++
			neighbor := &searchNode{NodeID: neighborID, Distance: tentative, Seq: seq}
			heap.Push(frontier, neighbor)
			open[neighborID] = neighbor
		}
	}

	return nil, false
}

// reconstructPath walks predecessor links back from end to start
func reconstructPath(previous map[NodeID]NodeID, start, end NodeID) []NodeID {
	path := []NodeID{end}
	for node := end; node != start; {
		node = previous[node]
		path = append(path, node)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
