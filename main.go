package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/paulmach/orb/geojson"
)

var (
	navigator *Navigator
	navMutex  sync.RWMutex

	dataDir string
)

func currentNavigator() *Navigator {
	navMutex.RLock()
	defer navMutex.RUnlock()
	return navigator
}

// replaceNavigator swaps in a freshly built snapshot. Requests already
// holding the old Navigator keep using it until they finish.
func replaceNavigator(nav *Navigator) {
	navMutex.Lock()
	navigator = nav
	navMutex.Unlock()
}

// corsMiddleware adds CORS headers to allow map-client requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type routeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type routeResponse struct {
	Success        bool    `json:"success"`
	Path           []Coord `json:"path,omitempty"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
	Code           string  `json:"code,omitempty"`
	Message        string  `json:"message,omitempty"`
}

// errorCode maps a classified route failure to a stable machine-readable code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrGeometryUnavailable):
		return "geometry_unavailable"
	case errors.Is(err, ErrSelectionIncomplete):
		return "selection_incomplete"
	case errors.Is(err, ErrPointNotFound):
		return "point_not_found"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, ErrNoPath):
		return "no_path"
	default:
		return "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// POST /route - compute the shortest walking route between two named points
func routeHandler(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, routeResponse{
			Success: false,
			Code:    "bad_request",
			Message: "invalid request body",
		})
		return
	}

	log.Printf("📍 Route request: %q → %q", req.Start, req.End)

	route, err := currentNavigator().FindRoute(req.Start, req.End)
	if err != nil {
		log.Printf("   ❌ %v", err)
		writeJSON(w, http.StatusOK, routeResponse{
			Success: false,
			Code:    errorCode(err),
			Message: err.Error(),
		})
		return
	}

	log.Printf("   ✅ %d waypoints, %.1f meters", len(route.Points), route.DistanceMeters)
	writeJSON(w, http.StatusOK, routeResponse{
		Success:        true,
		Path:           route.Points,
		DistanceMeters: route.DistanceMeters,
	})
}

// GET /pois - named points of interest for dropdown population
func poisHandler(w http.ResponseWriter, r *http.Request) {
	pois := currentNavigator().POIs()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pois":  pois,
		"count": len(pois),
	})
}

// GET /network - road graph edges as GeoJSON for map visualization
func networkHandler(w http.ResponseWriter, r *http.Request) {
	fc := geojson.NewFeatureCollection()
	for _, line := range currentNavigator().Graph().AsLineStrings() {
		fc.Append(geojson.NewFeature(line))
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		http.Error(w, "failed to encode network", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// GET /locate?lat=&lng= - resolve a map click to the building it falls in
func locateHandler(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "lat and lng query parameters are required",
		})
		return
	}

	building, ok := currentNavigator().Locate(Coord{Lat: lat, Lng: lng})
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "no building at this location",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"building": building.Name,
	})
}

// GET /health - load status and dataset counts
func healthHandler(w http.ResponseWriter, r *http.Request) {
	nav := currentNavigator()

	status := "ready"
	if !nav.Ready() {
		status = "road geometry unavailable"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"numNodes": nav.Graph().NodeCount(),
		"numEdges": nav.Graph().EdgeCount(),
		"numPOIs":  len(nav.POIs()),
	})
}

// POST /reload - rebuild everything from the data directory and swap it in
func reloadHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("🔄 Reloading campus geometry...")

	nav := NewNavigator(LoadCampusData(dataDir), EdgeLastWriteWins)
	replaceNavigator(nav)

	log.Printf("   ✅ Graph rebuilt: %d nodes, %d edges", nav.Graph().NodeCount(), nav.Graph().EdgeCount())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"numNodes": nav.Graph().NodeCount(),
		"numEdges": nav.Graph().EdgeCount(),
		"numPOIs":  len(nav.POIs()),
	})
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/route", routeHandler).Methods(http.MethodPost)
	r.HandleFunc("/pois", poisHandler).Methods(http.MethodGet)
	r.HandleFunc("/network", networkHandler).Methods(http.MethodGet)
	r.HandleFunc("/locate", locateHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/reload", reloadHandler).Methods(http.MethodPost)
	return r
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.StringVar(&dataDir, "data", "data", "directory containing roads.geojson, buildings.geojson and pois.geojson")
	flag.Parse()

	log.Println("🚀 Campus Navigation Server")

	replaceNavigator(NewNavigator(LoadCampusData(dataDir), EdgeLastWriteWins))

	nav := currentNavigator()
	log.Printf("   Graph: %d nodes, %d edges", nav.Graph().NodeCount(), nav.Graph().EdgeCount())
	log.Printf("   Points of interest: %d", len(nav.POIs()))
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /route    - shortest walking route between two named points")
	log.Println("  GET  /pois     - selectable points of interest")
	log.Println("  GET  /network  - road graph edges as GeoJSON")
	log.Println("  GET  /locate   - building containing a coordinate")
	log.Println("  GET  /health   - load status")
	log.Println("  POST /reload   - rebuild from the data directory")
	log.Println("")
	log.Printf("Server starting on %s", *addr)

	if err := http.ListenAndServe(*addr, corsMiddleware(newRouter())); err != nil {
		log.Fatal(err)
	}
}
