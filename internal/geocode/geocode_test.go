package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/safetruck/fleetsight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLocal(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     models.Coordinates
		resolved bool
	}{
		{"exact name", "Port Klang", models.Coordinates{Lat: 3.0044, Lon: 101.3925}, true},
		{"mixed case", "KUANTAN", models.Coordinates{Lat: 3.8077, Lon: 103.326}, true},
		{"name inside longer text", "Depot near Johor Bahru warehouse", models.Coordinates{Lat: 1.4927, Lon: 103.7414}, true},
		{"abbreviation", "JB", models.Coordinates{Lat: 1.4927, Lon: 103.7414}, true},
		{"coordinate literal", "3.25, 101.7", models.Coordinates{Lat: 3.25, Lon: 101.7}, true},
		{"negative coordinates", "-1.5,110.25", models.Coordinates{Lat: -1.5, Lon: 110.25}, true},
		{"unknown place", "Atlantis", models.Coordinates{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupLocal(tt.location)
			assert.Equal(t, tt.resolved, ok)
			if tt.resolved {
				assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
				assert.InDelta(t, tt.want.Lon, got.Lon, 1e-9)
			}
		})
	}
}

func TestLookup_FallsBackToAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Tanjung Malim, Malaysia", r.URL.Query().Get("q"))
		assert.Equal(t, "fleetsight/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"3.6833","lon":"101.5167","display_name":"Tanjung Malim, Perak"}]`))
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	coords, err := client.Lookup(context.Background(), "Tanjung Malim")
	require.NoError(t, err)
	assert.InDelta(t, 3.6833, coords.Lat, 1e-9)
	assert.InDelta(t, 101.5167, coords.Lon, 1e-9)
}

func TestLookup_LocalHitSkipsAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("table hit must not reach the network")
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	coords, err := client.Lookup(context.Background(), "Ipoh")
	require.NoError(t, err)
	assert.InDelta(t, 4.5975, coords.Lat, 1e-9)
}

func TestLookup_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	_, err := client.Lookup(context.Background(), "Nowhereville")
	assert.Error(t, err)
}

func TestReverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"lat":"3.139","lon":"101.6869","display_name":"Kuala Lumpur, Malaysia"}`))
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	name, err := client.Reverse(context.Background(), models.Coordinates{Lat: 3.139, Lon: 101.6869})
	require.NoError(t, err)
	assert.Equal(t, "Kuala Lumpur, Malaysia", name)
}

func TestLookup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWithBase(server.URL, server.Client())

	_, err := client.Lookup(context.Background(), "Gua Musang")
	assert.ErrorContains(t, err, "503")
}
