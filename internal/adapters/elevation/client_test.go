package elevation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

func TestLookup(t *testing.T) {
	var gotLocations string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Locations string `json:"locations"`
		}
		_ = json.Unmarshal(body, &req)
		gotLocations = req.Locations

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"elevation": 1203.5}, {"elevation": null}, {"elevation": 998.0}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 100)
	eles, err := c.Lookup(context.Background(), []domain.Coordinate{
		{Lon: 11.39, Lat: 47.26},
		{Lon: 11.40, Lat: 47.27},
		{Lon: 11.41, Lat: 47.28},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eles) != 3 {
		t.Fatalf("expected 3 elevations, got %d", len(eles))
	}
	if eles[0] != 1203.5 || eles[1] != 0 || eles[2] != 998.0 {
		t.Errorf("unexpected elevations: %v", eles)
	}

	// lat,lon pairs, pipe separated
	if !strings.HasPrefix(gotLocations, "47.260000,11.390000|") {
		t.Errorf("unexpected locations encoding: %s", gotLocations)
	}
}

func TestLookup_BatchLimit(t *testing.T) {
	c := New("http://localhost", 2)
	_, err := c.Lookup(context.Background(), make([]domain.Coordinate, 3))
	if err == nil {
		t.Error("expected error for oversized batch")
	}
}

func TestLookup_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "INVALID_REQUEST", "error": "bad locations"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 100)
	_, err := c.Lookup(context.Background(), []domain.Coordinate{{Lon: 11, Lat: 47}})
	if err == nil || !strings.Contains(err.Error(), "bad locations") {
		t.Errorf("expected api error surfaced, got %v", err)
	}
}

func TestLookup_ResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "results": [{"elevation": 1}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 100)
	_, err := c.Lookup(context.Background(), []domain.Coordinate{{Lon: 11, Lat: 47}, {Lon: 12, Lat: 48}})
	if err == nil {
		t.Error("expected error on result count mismatch")
	}
}
