// Package elevation resolves terrain elevations from an Open Topo Data
// compatible HTTP API.
package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// Client implements ports.ElevationProvider against an Open Topo Data
// style endpoint (POST /v1/<dataset> with pipe-separated locations).
type Client struct {
	baseURL   string
	batchSize int
	http      *http.Client
}

// New creates a Client. baseURL points at the dataset endpoint, e.g.
// https://api.opentopodata.org/v1/eudem25m.
func New(baseURL string, batchSize int) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		batchSize: batchSize,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// BatchSize returns the provider's per-call coordinate limit.
func (c *Client) BatchSize() int { return c.batchSize }

type lookupRequest struct {
	Locations string `json:"locations"`
}

type lookupResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Results []struct {
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// Lookup resolves elevations for one batch of coordinates, in order.
// Points the dataset has no coverage for come back as 0.
func (c *Client) Lookup(ctx context.Context, coords []domain.Coordinate) ([]float64, error) {
	if len(coords) == 0 {
		return nil, nil
	}
	if len(coords) > c.batchSize {
		return nil, fmt.Errorf("batch of %d exceeds provider limit %d", len(coords), c.batchSize)
	}

	var locs strings.Builder
	for i, coord := range coords {
		if i > 0 {
			locs.WriteByte('|')
		}
		locs.WriteString(strconv.FormatFloat(coord.Lat, 'f', 6, 64))
		locs.WriteByte(',')
		locs.WriteString(strconv.FormatFloat(coord.Lon, 'f', 6, 64))
	}

	body, err := json.Marshal(lookupRequest{Locations: locs.String()})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevation api status %d", resp.StatusCode)
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode elevation response: %w", err)
	}
	if out.Status != "OK" {
		return nil, fmt.Errorf("elevation api: %s", out.Error)
	}
	if len(out.Results) != len(coords) {
		return nil, fmt.Errorf("elevation api returned %d results for %d points", len(out.Results), len(coords))
	}

	eles := make([]float64, len(out.Results))
	for i, r := range out.Results {
		if r.Elevation != nil {
			eles[i] = *r.Elevation
		}
	}
	return eles, nil
}
