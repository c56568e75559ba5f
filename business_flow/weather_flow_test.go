package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/sajtem/sajtem-backend/app/services"
	"github.com/sajtem/sajtem-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeatherService struct {
	info *services.WeatherInfo
	err  error

	lastCity string
}

func (s *fakeWeatherService) CurrentByCity(_ context.Context, city string) (*services.WeatherInfo, error) {
	s.lastCity = city
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func TestWeatherCurrent_MissingAPIKey(t *testing.T) {
	flow := NewWeatherFlow(&fakeWeatherService{}, config.WeatherConfig{})

	_, err := flow.Current(context.Background(), "Santo Antônio de Jesus")
	assert.True(t, IsMissingWeatherAPIKey(err))
}

func TestWeatherCurrent_RequiresCity(t *testing.T) {
	flow := NewWeatherFlow(&fakeWeatherService{}, config.WeatherConfig{APIKey: "key"})

	for _, city := range []string{"", "   "} {
		_, err := flow.Current(context.Background(), city)
		assert.True(t, IsCityRequired(err), "expected city required error for %q", city)
	}
}

func TestWeatherCurrent_MapsProviderPayload(t *testing.T) {
	svc := &fakeWeatherService{info: &services.WeatherInfo{
		City:        "Santo Antônio de Jesus",
		Region:      "Bahia",
		TempC:       28.5,
		Condition:   "Parcialmente nublado",
		Humidity:    70,
		WindKph:     12.2,
		LastUpdated: "2026-09-01 12:00",
	}}
	flow := NewWeatherFlow(svc, config.WeatherConfig{APIKey: "key"})

	resp, err := flow.Current(context.Background(), "Santo Antônio de Jesus")
	require.NoError(t, err)
	assert.Equal(t, "Santo Antônio de Jesus", svc.lastCity)
	assert.Equal(t, "Bahia", resp.Region)
	assert.Equal(t, 28.5, resp.TempC)
	assert.Equal(t, "Parcialmente nublado", resp.Condition)
	assert.Equal(t, 70, resp.Humidity)
}

func TestWeatherCurrent_ProviderFailure(t *testing.T) {
	svc := &fakeWeatherService{err: errors.New("provider down")}
	flow := NewWeatherFlow(svc, config.WeatherConfig{APIKey: "key"})

	_, err := flow.Current(context.Background(), "Salvador")
	var be *BusinessError
	require.True(t, errors.As(err, &be))
}
