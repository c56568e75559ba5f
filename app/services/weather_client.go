package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// WeatherService abstracts the weather provider used by the city pages
type WeatherService interface {
	CurrentByCity(ctx context.Context, city string) (*WeatherInfo, error)
}

// WeatherInfo is the normalized current-conditions payload
type WeatherInfo struct {
	City        string
	Region      string
	TempC       float64
	Condition   string
	Humidity    int
	WindKph     float64
	LastUpdated string
}

// WeatherAPIClient implements WeatherService against a weatherapi.com-compatible API
type WeatherAPIClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewWeatherAPIClient(baseURL, apiKey string, timeout time.Duration) *WeatherAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherAPIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type weatherAPIResp struct {
	Location struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		Humidity    int     `json:"humidity"`
		WindKph     float64 `json:"wind_kph"`
		LastUpdated string  `json:"last_updated"`
	} `json:"current"`
}

func (c *WeatherAPIClient) CurrentByCity(ctx context.Context, city string) (*WeatherInfo, error) {
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&lang=pt", c.BaseURL, url.QueryEscape(c.APIKey), url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider: status %d for %q", resp.StatusCode, city)
	}

	var out weatherAPIResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &WeatherInfo{
		City:        out.Location.Name,
		Region:      out.Location.Region,
		TempC:       out.Current.TempC,
		Condition:   out.Current.Condition.Text,
		Humidity:    out.Current.Humidity,
		WindKph:     out.Current.WindKph,
		LastUpdated: out.Current.LastUpdated,
	}, nil
}
