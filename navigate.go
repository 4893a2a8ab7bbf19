package main

import (
	"errors"
	"fmt"
	"sort"
)

// Classified route outcomes. These cross the core boundary as values so
// the serving layer can translate them into user-facing messages; routing
// never panics or aborts the process.
var (
	ErrGeometryUnavailable = errors.New("road geometry is unavailable")
	ErrSelectionIncomplete = errors.New("both start and destination must be selected")
	ErrPointNotFound       = errors.New("no point of interest with that name")
	ErrUnreachable         = errors.New("point cannot be attached to the road network")
	ErrNoPath              = errors.New("no walkable route between the selected points")
)

// Route is a computed walking route. It is recomputed on every request and
// owned by the caller once returned.
type Route struct {
	Points         []Coord `json:"path"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// Navigator owns one immutable snapshot of the campus: the road graph, the
// point-of-interest index and the building index. Reloading geometry
// builds a whole new Navigator; queries already holding the old one keep
// reading it untouched.
type Navigator struct {
	graph     *Graph
	pois      map[string]Coord
	poiList   []POI
	buildings *BuildingIndex
	roadsOK   bool
}

// NewNavigator builds the road graph and lookup indexes from a loaded
// dataset. Duplicate point-of-interest names are not rejected; the
// later-parsed point wins the name.
func NewNavigator(data *CampusData, policy EdgePolicy) *Navigator {
	nav := &Navigator{
		graph:     BuildGraph(data.Roads, policy),
		pois:      make(map[string]Coord, len(data.POIs)),
		poiList:   make([]POI, len(data.POIs)),
		buildings: NewBuildingIndex(data.Buildings),
		roadsOK:   data.RoadsOK,
	}

	copy(nav.poiList, data.POIs)
	sort.Slice(nav.poiList, func(i, j int) bool {
		return nav.poiList[i].Name < nav.poiList[j].Name
	})

	for _, poi := range data.POIs {
		nav.pois[poi.Name] = poi.Coord
	}

	return nav
}

// FindRoute resolves two point-of-interest names to their nearest road
// nodes and computes the shortest walking path between them. A path that
// degenerates to a single node — both names snapping to the same spot —
// is no meaningful route and reported as ErrNoPath.
func (n *Navigator) FindRoute(startName, endName string) (Route, error) {
	if startName == "" || endName == "" {
		return Route{}, ErrSelectionIncomplete
	}
	if !n.roadsOK {
		return Route{}, ErrGeometryUnavailable
	}

	start, ok := n.pois[startName]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrPointNotFound, startName)
	}
	end, ok := n.pois[endName]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrPointNotFound, endName)
	}

	startNode, ok := n.graph.NearestNode(start)
	if !ok {
		return Route{}, ErrUnreachable
	}
	endNode, ok := n.graph.NearestNode(end)
	if !ok {
		return Route{}, ErrUnreachable
	}

	path, distance, found := n.graph.ShortestPath(startNode, endNode)
	if !found || len(path) < 2 {
		return Route{}, ErrNoPath
	}

	return Route{Points: path, DistanceMeters: distance}, nil
}

// POIs returns the selectable points of interest sorted by name.
func (n *Navigator) POIs() []POI {
	return n.poiList
}

// Locate returns the building whose outline contains c, if any.
func (n *Navigator) Locate(c Coord) (*Building, bool) {
	return n.buildings.Locate(c)
}

// Graph returns the current road graph.
func (n *Navigator) Graph() *Graph {
	return n.graph
}

// Ready reports whether road geometry loaded successfully.
func (n *Navigator) Ready() bool {
	return n.roadsOK
}
