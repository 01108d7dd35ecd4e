package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/safetruck/fleetsight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	portKlang = models.Coordinates{Lat: 3.0044, Lon: 101.3925}
	kuantan   = models.Coordinates{Lat: 3.8077, Lon: 103.326}
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		w.Write([]byte(`{"routes":[{"geometry":{"type":"LineString","coordinates":[[101.3925,3.0044],[102.1,3.4],[103.326,3.8077]]}}]}`))
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	geom, err := client.Fetch(context.Background(), portKlang, kuantan)
	require.NoError(t, err)
	assert.Equal(t, "LineString", geom.Type)
	assert.Len(t, geom.Coordinates, 3)
	assert.Equal(t, [2]float64{102.1, 3.4}, geom.Coordinates[1])
}

func TestFetch_ServerErrorDegradesToStraightLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	geom, err := client.Fetch(context.Background(), portKlang, kuantan)
	require.NoError(t, err)
	assert.Equal(t, "LineString", geom.Type)
	require.Len(t, geom.Coordinates, 2)
	// OSRM coordinate order is lon,lat
	assert.Equal(t, [2]float64{101.3925, 3.0044}, geom.Coordinates[0])
	assert.Equal(t, [2]float64{103.326, 3.8077}, geom.Coordinates[1])
}

func TestFetch_NoRoutesDegradesToStraightLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	geom, err := client.Fetch(context.Background(), portKlang, kuantan)
	require.NoError(t, err)
	assert.Len(t, geom.Coordinates, 2)
}

func TestFetch_UnreachableServerDegradesToStraightLine(t *testing.T) {
	client := NewClientWithBase("http://127.0.0.1:1", nil)

	geom, err := client.Fetch(context.Background(), portKlang, kuantan)
	require.NoError(t, err)
	assert.Len(t, geom.Coordinates, 2)
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClientWithBase("http://127.0.0.1:1", nil)

	_, err := client.Fetch(ctx, portKlang, kuantan)
	assert.ErrorIs(t, err, context.Canceled)
}
