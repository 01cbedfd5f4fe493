package ors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", domain.Coordinates{Lon: 30.3155, Lat: 59.9386}, "RU")
	if err != nil {
		t.Fatal(err)
	}
	c.baseURL = srv.URL
	return c
}

func TestSearchParsesLonLatOrder(t *testing.T) {
	var gotQuery map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/search" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"text":             q.Get("text"),
			"boundary.country": q.Get("boundary.country"),
			"focus.point.lon":  q.Get("focus.point.lon"),
			"focus.point.lat":  q.Get("focus.point.lat"),
			"size":             q.Get("size"),
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"geometry": map[string]any{"coordinates": []float64{30.3609, 59.9311}}},
			},
		})
	})

	coords, err := c.Search(context.Background(), "пл. Восстания, 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wire order is [lon, lat]; the struct must carry each axis in its
	// named field.
	if coords.Lon != 30.3609 || coords.Lat != 59.9311 {
		t.Fatalf("coords = %+v", coords)
	}

	if gotQuery["text"] != "пл. Восстания, 2" {
		t.Fatalf("text = %q", gotQuery["text"])
	}
	if gotQuery["boundary.country"] != "RU" {
		t.Fatalf("boundary.country = %q", gotQuery["boundary.country"])
	}
	if gotQuery["focus.point.lon"] != "30.3155" || gotQuery["focus.point.lat"] != "59.9386" {
		t.Fatalf("focus point = %q, %q", gotQuery["focus.point.lon"], gotQuery["focus.point.lat"])
	}
	if gotQuery["size"] != "1" {
		t.Fatalf("size = %q", gotQuery["size"])
	}
}

func TestSearchNoFeaturesIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	})

	_, err := c.Search(context.Background(), "nowhere")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSolveSubmitsRequestShape(t *testing.T) {
	var gotBody optimizationRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/optimization" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "test-key" {
			t.Fatalf("authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"routes": []map[string]any{
				{
					"vehicle": 1,
					"steps": []map[string]any{
						{"type": "start"},
						{"type": "job", "job": 0},
						{"type": "end"},
					},
					"geometry": "abc123",
				},
			},
		})
	})

	jobs := []ports.Job{
		{ID: 0, Location: []float64{30.36, 59.93}, Amount: []int{1}, Service: 300},
	}
	vehicles := []ports.VehicleSpec{
		{
			ID:         1,
			Profile:    "driving-car",
			Start:      []float64{30.3155, 59.9386},
			End:        []float64{30.3155, 59.9386},
			Capacity:   []int{2},
			TimeWindow: [2]int{28800, 64800},
		},
	}

	routes, err := c.Solve(context.Background(), jobs, vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gotBody.Geometry {
		t.Fatal("request must ask for geometry")
	}
	if len(gotBody.Jobs) != 1 || gotBody.Jobs[0].Service != 300 {
		t.Fatalf("jobs = %+v", gotBody.Jobs)
	}
	if len(gotBody.Vehicles) != 1 || gotBody.Vehicles[0].TimeWindow != [2]int{28800, 64800} {
		t.Fatalf("vehicles = %+v", gotBody.Vehicles)
	}

	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	if routes[0].Vehicle != 1 || routes[0].Geometry != "abc123" {
		t.Fatalf("route = %+v", routes[0])
	}
	if len(routes[0].Steps) != 3 || routes[0].Steps[1].Type != ports.StepTypeJob {
		t.Fatalf("steps = %+v", routes[0].Steps)
	}
}

func TestSolveSolverErrorCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 3, "error": "infeasible"})
	})

	_, err := c.Solve(context.Background(), nil, nil)
	if err == nil {
		t.Fatal("expected error for non-zero solver code")
	}
}

func TestStatusErrorIsNotRetriedForAuthFailures(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	_, err := c.Search(context.Background(), "addr")
	if err == nil {
		t.Fatal("expected error")
	}
	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (401 must not retry)", calls)
	}
}

func TestTransientStatusIsRetried(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"geometry": map[string]any{"coordinates": []float64{1, 2}}},
			},
		})
	})

	if _, err := c.Search(context.Background(), "addr"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}
