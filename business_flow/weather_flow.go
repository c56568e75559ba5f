package businessflow

import (
	"context"
	"strings"

	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/app/services"
	"github.com/sajtem/sajtem-backend/config"
)

// WeatherFlow proxies current conditions for the city pages, keeping the
// provider key server-side
type WeatherFlow interface {
	Current(ctx context.Context, city string) (*dto.WeatherResponse, error)
}

type WeatherFlowImpl struct {
	weather    services.WeatherService
	weatherCfg config.WeatherConfig
}

func NewWeatherFlow(weather services.WeatherService, weatherCfg config.WeatherConfig) WeatherFlow {
	return &WeatherFlowImpl{
		weather:    weather,
		weatherCfg: weatherCfg,
	}
}

func (f *WeatherFlowImpl) Current(ctx context.Context, city string) (*dto.WeatherResponse, error) {
	if f.weatherCfg.APIKey == "" {
		return nil, ErrMissingWeatherAPIKey
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	info, err := f.weather.CurrentByCity(ctx, city)
	if err != nil {
		return nil, NewBusinessError("WEATHER_LOOKUP_FAILED", "Failed to fetch current weather", err)
	}

	return &dto.WeatherResponse{
		City:        info.City,
		Region:      info.Region,
		TempC:       info.TempC,
		Condition:   info.Condition,
		Humidity:    info.Humidity,
		WindKph:     info.WindKph,
		LastUpdated: info.LastUpdated,
	}, nil
}
