package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupTestServer(t *testing.T, data *CampusData) *httptest.Server {
	t.Helper()
	replaceNavigator(NewNavigator(data, EdgeLastWriteWins))
	srv := httptest.NewServer(corsMiddleware(newRouter()))
	t.Cleanup(srv.Close)
	return srv
}

func postRoute(t *testing.T, srv *httptest.Server, start, end string) routeResponse {
	t.Helper()

	body, _ := json.Marshal(routeRequest{Start: start, End: end})
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /route failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /route status = %d, want 200", resp.StatusCode)
	}

	var out routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode route response: %v", err)
	}
	return out
}

func TestRouteEndpoint(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	out := postRoute(t, srv, "Library", "Hostel")
	if !out.Success {
		t.Fatalf("route failed: %s (%s)", out.Message, out.Code)
	}
	if len(out.Path) < 2 {
		t.Errorf("path has %d points, want at least 2", len(out.Path))
	}
	if out.DistanceMeters <= 0 {
		t.Errorf("distanceMeters = %f, want > 0", out.DistanceMeters)
	}
}

func TestRouteEndpointClassifiesFailures(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	cases := []struct {
		start, end string
		code       string
	}{
		{"", "Hostel", "selection_incomplete"},
		{"Library", "Cafeteria", "point_not_found"},
		{"Library", "Stadium", "no_path"},
	}
	for _, c := range cases {
		out := postRoute(t, srv, c.start, c.end)
		if out.Success {
			t.Errorf("route %q->%q unexpectedly succeeded", c.start, c.end)
			continue
		}
		if out.Code != c.code {
			t.Errorf("route %q->%q code = %q, want %q", c.start, c.end, out.Code, c.code)
		}
	}
}

func TestRouteEndpointRejectsMalformedBody(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatalf("POST /route failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPOIsEndpoint(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	resp, err := http.Get(srv.URL + "/pois")
	if err != nil {
		t.Fatalf("GET /pois failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		POIs  []POI `json:"pois"`
		Count int   `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode pois response: %v", err)
	}
	if out.Count != 4 || len(out.POIs) != 4 {
		t.Errorf("got %d points of interest, want 4", out.Count)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Status   string `json:"status"`
		NumNodes int    `json:"numNodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode health response: %v", err)
	}
	if out.Status != "ready" {
		t.Errorf("status = %q, want ready", out.Status)
	}
	if out.NumNodes != 5 {
		t.Errorf("numNodes = %d, want 5", out.NumNodes)
	}
}

func TestHealthEndpointReportsMissingGeometry(t *testing.T) {
	data := testCampus()
	data.RoadsOK = false
	srv := setupTestServer(t, data)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode health response: %v", err)
	}
	if out.Status == "ready" {
		t.Error("health reported ready without road geometry")
	}
}

func TestNetworkEndpoint(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	resp, err := http.Get(srv.URL + "/network")
	if err != nil {
		t.Fatalf("GET /network failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode network response: %v", err)
	}
	if out.Type != "FeatureCollection" {
		t.Errorf("type = %q, want FeatureCollection", out.Type)
	}
	// The test campus has 2 chain edges and 1 disjoint edge.
	if len(out.Features) != 3 {
		t.Errorf("got %d edge features, want 3", len(out.Features))
	}
	for _, f := range out.Features {
		if f.Geometry.Type != "LineString" {
			t.Errorf("feature geometry = %q, want LineString", f.Geometry.Type)
		}
	}
}

func TestLocateEndpoint(t *testing.T) {
	srv := setupTestServer(t, testCampus())

	resp, err := http.Get(srv.URL + "/locate?lat=18.5205&lng=73.8505")
	if err != nil {
		t.Fatalf("GET /locate failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success  bool   `json:"success"`
		Building string `json:"building"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode locate response: %v", err)
	}
	if !out.Success || out.Building != "Main Building" {
		t.Errorf("locate = %+v, want Main Building", out)
	}

	resp, err = http.Get(srv.URL + "/locate?lat=abc")
	if err != nil {
		t.Fatalf("GET /locate failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed locate status = %d, want 400", resp.StatusCode)
	}
}

func TestReloadEndpointSwapsNavigator(t *testing.T) {
	srv := setupTestServer(t, &CampusData{})

	dataDir = "testdata"
	resp, err := http.Post(srv.URL+"/reload", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /reload failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success  bool `json:"success"`
		NumNodes int  `json:"numNodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode reload response: %v", err)
	}
	if !out.Success || out.NumNodes != 4 {
		t.Errorf("reload = %+v, want success with 4 nodes", out)
	}

	if !currentNavigator().Ready() {
		t.Error("reload did not swap in a ready navigator")
	}
}
