package main

import (
	"math"

	"github.com/paulmach/orb"
)

// Road is the ordered vertex sequence of one walkable road feature.
type Road []Coord

// EdgePolicy decides what happens when two road features describe the same
// segment, possibly with different implied distances.
type EdgePolicy int

const (
	// EdgeLastWriteWins overwrites an existing edge with the latest computed
	// weight, matching how the upstream campus data has always been consumed.
	EdgeLastWriteWins EdgePolicy = iota
	// EdgeKeepMinimum keeps the smaller of the two weights.
	EdgeKeepMinimum
)

// Graph is an undirected weighted road graph keyed by exact coordinates.
// Weights are real-world distances in meters, so they are never negative.
// A graph is built once per data load and never mutated afterwards; any
// number of route queries may read it concurrently without locking.
type Graph struct {
	adj    map[Coord]map[Coord]float64
	policy EdgePolicy
}

// NewGraph returns an empty graph with the given duplicate-edge policy.
func NewGraph(policy EdgePolicy) *Graph {
	return &Graph{
		adj:    make(map[Coord]map[Coord]float64),
		policy: policy,
	}
}

// BuildGraph converts road polylines into a weighted graph. Each pair of
// consecutive vertices becomes one symmetric edge weighted by haversine
// distance. A road with fewer than two vertices contributes no edges, and
// consecutive duplicate vertices are skipped so self-loops never occur.
func BuildGraph(roads []Road, policy EdgePolicy) *Graph {
	g := NewGraph(policy)
	for _, road := range roads {
		for i := 0; i+1 < len(road); i++ {
			a, b := road[i], road[i+1]
			if a == b {
				continue
			}
			g.addEdge(a, b, a.DistanceMeters(b))
		}
	}
	return g
}

func (g *Graph) addEdge(a, b Coord, weight float64) {
	g.insertHalf(a, b, weight)
	g.insertHalf(b, a, weight)
}

func (g *Graph) insertHalf(from, to Coord, weight float64) {
	neighbors, ok := g.adj[from]
	if !ok {
		neighbors = make(map[Coord]float64)
		g.adj[from] = neighbors
	}
	if old, exists := neighbors[to]; exists && g.policy == EdgeKeepMinimum && old <= weight {
		return
	}
	neighbors[to] = weight
}

// NodeCount returns the number of graph nodes.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, neighbors := range g.adj {
		total += len(neighbors)
	}
	return total / 2
}

// HasNode reports whether c is a graph node.
func (g *Graph) HasNode(c Coord) bool {
	_, ok := g.adj[c]
	return ok
}

// Weight returns the edge weight between a and b, if such an edge exists.
func (g *Graph) Weight(a, b Coord) (float64, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// NearestNode returns the graph node closest to target, scanning every
// node. It reports false only when the graph is empty. Ties keep the first
// node encountered; since map iteration order is unspecified, callers may
// rely only on getting *a* nearest node, never a particular one.
//
// The linear scan is intentional: the resolver runs at most twice per
// route request over a campus-scale node set.
func (g *Graph) NearestNode(target Coord) (Coord, bool) {
	var best Coord
	bestDist := math.Inf(1)
	found := false

	for node := range g.adj {
		if d := target.DistanceMeters(node); d < bestDist {
			best = node
			bestDist = d
			found = true
		}
	}

	return best, found
}

// AsLineStrings returns every edge exactly once as a two-point LineString
// in (lng, lat) axis order, for map visualization.
func (g *Graph) AsLineStrings() []orb.LineString {
	type edgeKey struct{ a, b Coord }

	seen := make(map[edgeKey]bool)
	lines := make([]orb.LineString, 0, g.EdgeCount())

	for from, neighbors := range g.adj {
		for to := range neighbors {
			key := edgeKey{from, to}
			if coordLess(to, from) {
				key = edgeKey{to, from}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			lines = append(lines, orb.LineString{from.Point(), to.Point()})
		}
	}

	return lines
}
