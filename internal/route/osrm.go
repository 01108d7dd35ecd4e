// Package route fetches driving-route geometry between two points from
// an OSRM server. Callers always get a usable geometry: when the server
// is unreachable or has no route, a straight line between the endpoints
// is returned instead.
package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/safetruck/fleetsight/internal/models"
)

const defaultOSRMURL = "https://router.project-osrm.org/route/v1/driving"

// Geometry is a GeoJSON LineString; coordinates are [lon, lat] pairs.
type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// Client fetches routes from OSRM.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a routing client against the public OSRM server.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultOSRMURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBase is for tests pointing at a stub server.
func NewClientWithBase(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type osrmResponse struct {
	Routes []struct {
		Geometry Geometry `json:"geometry"`
	} `json:"routes"`
}

// straightLine is the degraded-mode geometry between two points.
func straightLine(start, end models.Coordinates) Geometry {
	return Geometry{
		Type: "LineString",
		Coordinates: [][2]float64{
			{start.Lon, start.Lat},
			{end.Lon, end.Lat},
		},
	}
}

// Fetch returns the driving route between start and end. Any failure
// mode short of a cancelled context degrades to a straight line rather
// than an error: the map is decoration, not a correctness surface.
func (c *Client) Fetch(ctx context.Context, start, end models.Coordinates) (Geometry, error) {
	// OSRM takes lon,lat order
	url := fmt.Sprintf("%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, start.Lon, start.Lat, end.Lon, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return straightLine(start, end), nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Geometry{}, ctx.Err()
		}
		return straightLine(start, end), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return straightLine(start, end), nil
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return straightLine(start, end), nil
	}
	if len(parsed.Routes) == 0 {
		return straightLine(start, end), nil
	}

	return parsed.Routes[0].Geometry, nil
}
