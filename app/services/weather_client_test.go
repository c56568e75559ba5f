package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherCurrentByCity_ParsesProviderPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "provider-key", q.Get("key"))
		assert.Equal(t, "Santo Antônio de Jesus", q.Get("q"))
		assert.Equal(t, "pt", q.Get("lang"))

		w.Write([]byte(`{
			"location": {"name": "Santo Antônio de Jesus", "region": "Bahia"},
			"current": {
				"temp_c": 28.5,
				"condition": {"text": "Parcialmente nublado"},
				"humidity": 70,
				"wind_kph": 12.2,
				"last_updated": "2026-09-01 12:00"
			}
		}`))
	}))
	defer srv.Close()

	client := NewWeatherAPIClient(srv.URL, "provider-key", 5*time.Second)
	info, err := client.CurrentByCity(context.Background(), "Santo Antônio de Jesus")

	require.NoError(t, err)
	assert.Equal(t, "Santo Antônio de Jesus", info.City)
	assert.Equal(t, "Bahia", info.Region)
	assert.Equal(t, 28.5, info.TempC)
	assert.Equal(t, "Parcialmente nublado", info.Condition)
	assert.Equal(t, 70, info.Humidity)
	assert.Equal(t, 12.2, info.WindKph)
	assert.Equal(t, "2026-09-01 12:00", info.LastUpdated)
}

func TestWeatherCurrentByCity_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key invalid"}}`))
	}))
	defer srv.Close()

	client := NewWeatherAPIClient(srv.URL, "bad-key", 5*time.Second)
	_, err := client.CurrentByCity(context.Background(), "Salvador")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
