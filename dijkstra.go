package main

import (
	"container/heap"
)

// searchNode tracks one graph node during a shortest-path run.
type searchNode struct {
	coord  Coord
	dist   float64 // best known distance from the start, in meters
	parent *searchNode
	index  int // index in the heap
}

// searchQueue implements heap.Interface for Dijkstra's algorithm.
type searchQueue []*searchNode

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	return q[i].dist < q[j].dist
}

func (q searchQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *searchQueue) Push(x interface{}) {
	n := len(*q)
	node := x.(*searchNode)
	node.index = n
	*q = append(*q, node)
}

func (q *searchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[0 : n-1]
	return node
}

// ShortestPath computes the minimum-weight path between two graph nodes
// with Dijkstra's algorithm. Edge weights are real-world distances and so
// never negative. It returns the path from start to end inclusive and its
// total weight in meters; the third result is false when either endpoint
// is not a graph node or no connecting path exists. When start equals end
// the path is the single-node sequence [start] with weight zero — callers
// that need a drawable route must treat paths shorter than two points as
// no meaningful route.
//
// When equally short paths exist, which one is returned depends on map
// iteration order and is not stable; only the total weight is guaranteed.
func (g *Graph) ShortestPath(start, end Coord) ([]Coord, float64, bool) {
	if !g.HasNode(start) || !g.HasNode(end) {
		return nil, 0, false
	}

	open := &searchQueue{}
	heap.Init(open)

	startNode := &searchNode{coord: start}
	heap.Push(open, startNode)

	settled := make(map[Coord]bool)
	pending := map[Coord]*searchNode{start: startNode}

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		delete(pending, current.coord)

		if current.coord == end {
			// The first pop of the destination is already optimal.
			path := []Coord{}
			for node := current; node != nil; node = node.parent {
				path = append([]Coord{node.coord}, path...)
			}
			return path, current.dist, true
		}

		settled[current.coord] = true

		for neighbor, weight := range g.adj[current.coord] {
			if settled[neighbor] {
				continue
			}

			tentative := current.dist + weight

			node, exists := pending[neighbor]
			if !exists {
				node = &searchNode{
					coord:  neighbor,
					dist:   tentative,
					parent: current,
				}
				heap.Push(open, node)
				pending[neighbor] = node
			} else if tentative < node.dist {
				node.dist = tentative
				node.parent = current
				heap.Fix(open, node.index)
			}
		}
	}

	return nil, 0, false
}
