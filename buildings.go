package main

import (
	"errors"

	"github.com/dhconnelly/rtreego"
)

// Building is a named campus building outline. Buildings play no part in
// routing; they back point-containment lookups for the map client.
type Building struct {
	Name    string  `json:"name"`
	Outline []Coord `json:"-"`
}

// buildingEntry wraps a building for R-tree storage.
type buildingEntry struct {
	building *Building
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *buildingEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// BuildingIndex answers which building outline contains a coordinate.
type BuildingIndex struct {
	tree *rtreego.Rtree
}

// NewBuildingIndex indexes building bounding boxes in an R-tree. Candidate
// hits are refined with exact ray-casting containment at query time.
func NewBuildingIndex(buildings []Building) *BuildingIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for i := range buildings {
		b := &buildings[i]
		bbox, err := outlineBounds(b.Outline)
		if err != nil {
			continue
		}
		tree.Insert(&buildingEntry{building: b, bbox: bbox})
	}

	return &BuildingIndex{tree: tree}
}

// Locate returns the building containing c, or false when c is in the open.
func (idx *BuildingIndex) Locate(c Coord) (*Building, bool) {
	point := rtreego.Point{c.Lng, c.Lat}
	for _, item := range idx.tree.SearchIntersect(point.ToRect(1e-9)) {
		entry := item.(*buildingEntry)
		if pointInRing(c, entry.building.Outline) {
			return entry.building, true
		}
	}
	return nil, false
}

// outlineBounds computes the axis-aligned bounding box of an outline in
// (lng, lat) axis order.
func outlineBounds(outline []Coord) (rtreego.Rect, error) {
	if len(outline) == 0 {
		return rtreego.Rect{}, errors.New("empty outline")
	}

	minLng, minLat := outline[0].Lng, outline[0].Lat
	maxLng, maxLat := outline[0].Lng, outline[0].Lat

	for _, v := range outline[1:] {
		minLng = min(minLng, v.Lng)
		maxLng = max(maxLng, v.Lng)
		minLat = min(minLat, v.Lat)
		maxLat = max(maxLat, v.Lat)
	}

	return rtreego.NewRect(
		rtreego.Point{minLng, minLat},
		[]float64{maxLng - minLng, maxLat - minLat},
	)
}
