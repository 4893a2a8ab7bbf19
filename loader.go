package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// POI is a named, single-coordinate location selectable as a route endpoint.
type POI struct {
	Name string `json:"name"`
	Coord
}

// CampusData bundles the three geometry documents a campus dataset is made
// of. Roads drive graph construction, points of interest name the
// selectable endpoints, and building outlines only serve locate queries.
// RoadsOK records whether the roads document itself loaded; without it the
// navigator reports geometry as unavailable instead of failing hard.
type CampusData struct {
	Roads     []Road
	Buildings []Building
	POIs      []POI
	RoadsOK   bool
}

// Document file names within the data directory.
const (
	roadsFile     = "roads.geojson"
	buildingsFile = "buildings.geojson"
	poisFile      = "pois.geojson"
)

// LoadCampusData reads the three geometry documents concurrently and joins
// them before anything is built from them. A document that fails to load
// or parse logs the failure and contributes an empty value; the other
// documents are still used.
func LoadCampusData(dir string) *CampusData {
	data := &CampusData{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		roads, err := readRoads(filepath.Join(dir, roadsFile))
		if err != nil {
			log.Printf("⚠️  Roads unavailable: %v", err)
			return
		}
		data.Roads = roads
		data.RoadsOK = true
	}()

	go func() {
		defer wg.Done()
		buildings, err := readBuildings(filepath.Join(dir, buildingsFile))
		if err != nil {
			log.Printf("⚠️  Buildings unavailable: %v", err)
			return
		}
		data.Buildings = buildings
	}()

	go func() {
		defer wg.Done()
		pois, err := readPOIs(filepath.Join(dir, poisFile))
		if err != nil {
			log.Printf("⚠️  Points of interest unavailable: %v", err)
			return
		}
		data.POIs = pois
	}()

	wg.Wait()

	log.Printf("📂 Campus data loaded: %d roads, %d points of interest, %d buildings",
		len(data.Roads), len(data.POIs), len(data.Buildings))
	return data
}

func readRoads(path string) ([]Road, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoads(raw)
}

func readBuildings(path string) ([]Building, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBuildings(raw)
}

func readPOIs(path string) ([]POI, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePOIs(raw)
}

// ParseRoads extracts road centerlines from a GeoJSON document. GeoJSON
// stores coordinates as (lng, lat); they are transposed here, at the parse
// boundary, so everything downstream works in (lat, lng).
func ParseRoads(data []byte) ([]Road, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse roads: %w", err)
	}

	var roads []Road
	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.LineString:
			roads = append(roads, lineToRoad(geom))
		case orb.MultiLineString:
			for _, line := range geom {
				roads = append(roads, lineToRoad(line))
			}
		}
	}
	return roads, nil
}

func lineToRoad(line orb.LineString) Road {
	road := make(Road, 0, len(line))
	for _, pt := range line {
		road = append(road, Coord{Lat: pt[1], Lng: pt[0]})
	}
	return road
}

// ParsePOIs extracts named point features from a GeoJSON document.
// Unnamed points are skipped since they cannot be selected by name.
func ParsePOIs(data []byte) ([]POI, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse points of interest: %w", err)
	}

	var pois []POI
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		name := f.Properties.MustString("name", "")
		if name == "" {
			log.Printf("⚠️  Skipping unnamed point of interest at (%.6f, %.6f)", pt[1], pt[0])
			continue
		}
		pois = append(pois, POI{
			Name:  name,
			Coord: Coord{Lat: pt[1], Lng: pt[0]},
		})
	}
	return pois, nil
}

// ParseBuildings extracts building outlines from a GeoJSON document. Only
// the outer ring of each polygon is kept.
func ParseBuildings(data []byte) ([]Building, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse buildings: %w", err)
	}

	var buildings []Building
	for _, f := range fc.Features {
		name := f.Properties.MustString("name", "")
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			if len(geom) > 0 {
				buildings = append(buildings, Building{Name: name, Outline: ringToCoords(geom[0])})
			}
		case orb.MultiPolygon:
			for _, poly := range geom {
				if len(poly) > 0 {
					buildings = append(buildings, Building{Name: name, Outline: ringToCoords(poly[0])})
				}
			}
		}
	}
	return buildings, nil
}

func ringToCoords(ring orb.Ring) []Coord {
	coords := make([]Coord, 0, len(ring))
	for _, pt := range ring {
		coords = append(coords, Coord{Lat: pt[1], Lng: pt[0]})
	}
	return coords
}

// LoadRoadGraph parses a roads document and builds its graph in one step.
func LoadRoadGraph(data []byte, policy EdgePolicy) (*Graph, error) {
	roads, err := ParseRoads(data)
	if err != nil {
		return nil, err
	}
	return BuildGraph(roads, policy), nil
}
