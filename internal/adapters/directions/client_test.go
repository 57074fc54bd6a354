package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

func TestRoute(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{"geometry": {"coordinates": [[11.39, 47.26], [11.40, 47.27], [11.41, 47.28]]}}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "foot")
	points, err := c.Route(context.Background(), []domain.Coordinate{
		{Lon: 11.39, Lat: 47.26},
		{Lon: 11.41, Lat: 47.28},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 snapped points, got %d", len(points))
	}
	if points[0].Lon != 11.39 || points[0].Lat != 47.26 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if !strings.HasPrefix(gotPath, "/route/v1/foot/11.390000,47.260000;") {
		t.Errorf("unexpected request path: %s", gotPath)
	}
}

func TestRoute_TooFewWaypoints(t *testing.T) {
	c := New("http://localhost", "foot")
	if _, err := c.Route(context.Background(), []domain.Coordinate{{Lon: 11, Lat: 47}}); err == nil {
		t.Error("expected error for a single waypoint")
	}
}

func TestRoute_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "message": "impossible route"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "foot")
	_, err := c.Route(context.Background(), []domain.Coordinate{{Lon: 11, Lat: 47}, {Lon: 12, Lat: 48}})
	if err == nil || !strings.Contains(err.Error(), "NoRoute") {
		t.Errorf("expected api error surfaced, got %v", err)
	}
}
