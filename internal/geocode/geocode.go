// Package geocode resolves free-text Malaysian location names to
// coordinates: a built-in table of well-known places first, literal
// "lat, lon" strings second, the Nominatim API as a last resort.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/safetruck/fleetsight/internal/models"
)

const nominatimURL = "https://nominatim.openstreetmap.org"

// Well-known Malaysian locations. Covers the cities, highways and ports
// the fleet actually serves so most lookups never leave the process.
var locationTable = map[string]models.Coordinates{
	"kuala lumpur":  {Lat: 3.139, Lon: 101.6869},
	"kl":            {Lat: 3.139, Lon: 101.6869},
	"penang":        {Lat: 5.4164, Lon: 100.3327},
	"george town":   {Lat: 5.4164, Lon: 100.3327},
	"georgetown":    {Lat: 5.4164, Lon: 100.3327},
	"ipoh":          {Lat: 4.5975, Lon: 101.0901},
	"johor bahru":   {Lat: 1.4927, Lon: 103.7414},
	"jb":            {Lat: 1.4927, Lon: 103.7414},
	"melaka":        {Lat: 2.1896, Lon: 102.2501},
	"malacca":       {Lat: 2.1896, Lon: 102.2501},
	"seremban":      {Lat: 2.7258, Lon: 101.9424},
	"shah alam":     {Lat: 3.0733, Lon: 101.5185},
	"petaling jaya": {Lat: 3.1073, Lon: 101.6067},
	"pj":            {Lat: 3.1073, Lon: 101.6067},
	"subang jaya":   {Lat: 3.0436, Lon: 101.5872},
	"klang":         {Lat: 3.0333, Lon: 101.45},
	"putrajaya":     {Lat: 2.9264, Lon: 101.6964},
	"cyberjaya":     {Lat: 2.9213, Lon: 101.6559},
	"kota kinabalu": {Lat: 5.9804, Lon: 116.0735},
	"kuching":       {Lat: 1.5535, Lon: 110.3593},
	"alor setar":    {Lat: 6.1248, Lon: 100.3678},
	"kota bharu":    {Lat: 6.1256, Lon: 102.2381},
	"kuantan":       {Lat: 3.8077, Lon: 103.326},
	"butterworth":   {Lat: 5.4141, Lon: 100.3639},
	"taiping":       {Lat: 4.85, Lon: 100.7333},

	"plus highway":  {Lat: 3.5, Lon: 101.5},
	"nkve":          {Lat: 3.2, Lon: 101.55},
	"elite highway": {Lat: 2.8, Lon: 101.6},
	"kesas":         {Lat: 3.0, Lon: 101.5},

	"port klang":   {Lat: 3.0044, Lon: 101.3925},
	"port dickson": {Lat: 2.5208, Lon: 101.7971},
	"penang port":  {Lat: 5.4241, Lon: 100.3478},
	"johor port":   {Lat: 1.4341, Lon: 103.6683},
}

var coordPattern = regexp.MustCompile(`(-?\d+\.?\d*)\s*,\s*(-?\d+\.?\d*)`)

// Client looks up locations, falling back to Nominatim over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a geocoding client with sane HTTP timeouts.
func NewClient() *Client {
	return &Client{
		baseURL:    nominatimURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBase is for tests pointing at a stub server.
func NewClientWithBase(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// tableKeys holds the table's keys longest first, so "port klang" wins
// over "klang" when both occur in the text. Substring matching over an
// unordered map would make the winner depend on iteration order.
var tableKeys = func() []string {
	keys := make([]string, 0, len(locationTable))
	for key := range locationTable {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// LookupLocal resolves a name against the built-in table and the literal
// coordinate format only. It never touches the network.
func LookupLocal(location string) (models.Coordinates, bool) {
	normalized := strings.ToLower(strings.TrimSpace(location))

	if coords, ok := locationTable[normalized]; ok {
		return coords, true
	}
	for _, key := range tableKeys {
		if strings.Contains(normalized, key) {
			return locationTable[key], true
		}
	}

	if m := coordPattern.FindStringSubmatch(location); m != nil {
		lat, errLat := strconv.ParseFloat(m[1], 64)
		lon, errLon := strconv.ParseFloat(m[2], 64)
		if errLat == nil && errLon == nil {
			return models.Coordinates{Lat: lat, Lon: lon}, true
		}
	}

	return models.Coordinates{}, false
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves a location name to coordinates. Local resolution is
// tried first; unresolved names go to Nominatim scoped to Malaysia.
func (c *Client) Lookup(ctx context.Context, location string) (models.Coordinates, error) {
	if coords, ok := LookupLocal(location); ok {
		return coords, nil
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("q", location+", Malaysia")
	query.Set("limit", "1")

	var results []nominatimResult
	if err := c.get(ctx, c.baseURL+"/search?"+query.Encode(), &results); err != nil {
		return models.Coordinates{}, err
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("no match for location %q", location)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("bad latitude in geocode response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("bad longitude in geocode response: %w", err)
	}

	return models.Coordinates{Lat: lat, Lon: lon}, nil
}

// Reverse returns a human-readable name for a coordinate pair.
func (c *Client) Reverse(ctx context.Context, coords models.Coordinates) (string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))

	var result nominatimResult
	if err := c.get(ctx, c.baseURL+"/reverse?"+query.Encode(), &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("no name for %.4f,%.4f", coords.Lat, coords.Lon)
	}
	return result.DisplayName, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "fleetsight/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding API returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding geocode response: %w", err)
	}
	return nil
}
