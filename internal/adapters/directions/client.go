// Package directions snaps waypoints to routable tracks through an
// OSRM-compatible HTTP API.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// Client implements ports.DirectionsProvider against an OSRM-style
// /route/v1/<profile>/<coords> endpoint with GeoJSON geometry.
type Client struct {
	baseURL string
	profile string
	http    *http.Client
}

// New creates a Client for the given router base URL and travel profile
// (e.g. "foot" or "bike").
func New(baseURL, profile string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		profile: profile,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Routes  []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route returns a snapped track through the waypoints. The router does
// not carry elevations; callers resolve those separately.
func (c *Client) Route(ctx context.Context, waypoints []domain.Coordinate) ([]domain.TrackPoint, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}

	var coords strings.Builder
	for i, wp := range waypoints {
		if i > 0 {
			coords.WriteByte(';')
		}
		coords.WriteString(strconv.FormatFloat(wp.Lon, 'f', 6, 64))
		coords.WriteByte(',')
		coords.WriteString(strconv.FormatFloat(wp.Lat, 'f', 6, 64))
	}

	url := fmt.Sprintf("%s/route/v1/%s/%s?geometries=geojson&overview=full",
		c.baseURL, c.profile, coords.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	var out routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if out.Code != "Ok" {
		return nil, fmt.Errorf("directions api: %s %s", out.Code, out.Message)
	}
	if len(out.Routes) == 0 {
		return nil, fmt.Errorf("directions api returned no routes")
	}

	geo := out.Routes[0].Geometry.Coordinates
	points := make([]domain.TrackPoint, 0, len(geo))
	for _, c := range geo {
		if len(c) < 2 {
			continue
		}
		points = append(points, domain.TrackPoint{Lon: c[0], Lat: c[1]})
	}
	return points, nil
}
