package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"agrilink-backend/config"
	"agrilink-backend/internal/apperr"
)

// WeatherService fetches current conditions from the OpenWeatherMap API
type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// WeatherReport is the subset of the upstream response the API exposes,
// plus a short farming-oriented note derived from it.
type WeatherReport struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Conditions  string  `json:"conditions"`
	WindSpeed   float64 `json:"windSpeed"`
	Advice      string  `json:"advice"`
}

func NewWeatherService(cfg config.WeatherConfig) *WeatherService {
	return &WeatherService{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Current fetches conditions for the named city
func (s *WeatherService) Current(ctx context.Context, city string) (*WeatherReport, error) {
	if city == "" {
		return nil, apperr.InvalidInput("city is required")
	}
	if s.apiKey == "" {
		return nil, apperr.New(apperr.KindInternal, "weather service is not configured")
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	params.Set("appid", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("city not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	report := &WeatherReport{
		Location:    payload.Name,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		report.Conditions = payload.Weather[0].Description
		report.Advice = farmingAdvice(payload.Weather[0].Main, report.Temperature)
	}
	return report, nil
}

func farmingAdvice(conditions string, temp float64) string {
	switch conditions {
	case "Rain", "Drizzle", "Thunderstorm":
		return "Rain expected. Hold off on irrigation and spraying."
	case "Clear":
		if temp > 32 {
			return "Hot and clear. Irrigate early morning or late evening."
		}
		return "Clear skies. Good conditions for field work."
	case "Clouds":
		return "Overcast. Suitable for transplanting."
	default:
		return "Check local conditions before field work."
	}
}
