package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Coord is a geographic coordinate and the graph node identity.
//
// Node identity is exact structural equality of both components. There is
// no tolerance or fuzzy matching: two road vertices become the same node
// only when their coordinates are equal bit for bit. Campus datasets share
// vertices between features, so exact matching is the intended contract.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point returns the coordinate in orb's (lng, lat) axis order.
func (c Coord) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// DistanceMeters returns the haversine distance to other in meters.
func (c Coord) DistanceMeters(other Coord) float64 {
	return geo.DistanceHaversine(c.Point(), other.Point())
}

// coordLess orders coordinates by latitude, then longitude.
func coordLess(a, b Coord) bool {
	if a.Lat != b.Lat {
		return a.Lat < b.Lat
	}
	return a.Lng < b.Lng
}

// pointInRing checks if a coordinate is inside a closed ring using ray casting
func pointInRing(c Coord, ring []Coord) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	count := 0
	for i := 0; i < n; i++ {
		v1 := ring[i]
		v2 := ring[(i+1)%n]

		// Check if the ray from c to the east crosses the edge
		if (v1.Lat > c.Lat) != (v2.Lat > c.Lat) {
			slope := (c.Lng-v1.Lng)*(v2.Lat-v1.Lat) - (v2.Lng-v1.Lng)*(c.Lat-v1.Lat)
			if v2.Lat > v1.Lat {
				if slope > 0 {
					count++
				}
			} else {
				if slope < 0 {
					count++
				}
			}
		}
	}

	return count%2 == 1
}
