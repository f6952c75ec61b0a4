package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"caterflow-backend/config"

	"go.uber.org/zap"
)

type Weather struct {
	Temp      string `json:"temp"`
	Condition string `json:"condition"`
}

// PlaceholderWeather is shown when conditions could not be fetched.
var PlaceholderWeather = Weather{Temp: "--", Condition: "Loading..."}

type WeatherProvider interface {
	Current(ctx context.Context, city string) (Weather, error)
}

// OpenMeteoWeather looks up current conditions for a city name in Fahrenheit.
type OpenMeteoWeather struct {
	geocodingURL string
	forecastURL  string
	defaultCity  string
	client       *http.Client
	cache        Cache
	ttl          time.Duration
	logger       *zap.Logger
}

func NewOpenMeteoWeather(cfg config.WeatherConfig, cache Cache, logger *zap.Logger) *OpenMeteoWeather {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &OpenMeteoWeather{
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
		defaultCity:  cfg.DefaultCity,
		client:       &http.Client{Timeout: timeout},
		cache:        cache,
		ttl:          cfg.CacheTTL,
		logger:       logger,
	}
}

func (w *OpenMeteoWeather) Current(ctx context.Context, city string) (Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = w.defaultCity
	}
	key := "weather:" + strings.ToLower(city)

	if cached, ok, err := w.cache.Get(ctx, key); err != nil {
		w.logger.Warn("Weather cache read failed", zap.String("city", city), zap.Error(err))
	} else if ok {
		var weather Weather
		if err := json.Unmarshal([]byte(cached), &weather); err == nil {
			return weather, nil
		}
	}

	weather, err := w.fetch(ctx, city)
	if err != nil {
		return Weather{}, err
	}

	if raw, err := json.Marshal(weather); err == nil {
		if err := w.cache.Set(ctx, key, string(raw), w.ttl); err != nil {
			w.logger.Warn("Weather cache write failed", zap.String("city", city), zap.Error(err))
		}
	}
	return weather, nil
}

type openMeteoPlaces struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type openMeteoForecast struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

func (w *OpenMeteoWeather) fetch(ctx context.Context, city string) (Weather, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var places openMeteoPlaces
	if err := w.getJSON(ctx, w.geocodingURL+"?"+q.Encode(), &places); err != nil {
		return Weather{}, fmt.Errorf("locate %s: %w", city, err)
	}
	if len(places.Results) == 0 {
		return Weather{}, fmt.Errorf("locate %s: %w", city, ErrNoResults)
	}

	q = url.Values{}
	q.Set("latitude", strconv.FormatFloat(places.Results[0].Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(places.Results[0].Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("temperature_unit", "fahrenheit")

	var forecast openMeteoForecast
	if err := w.getJSON(ctx, w.forecastURL+"?"+q.Encode(), &forecast); err != nil {
		return Weather{}, fmt.Errorf("forecast %s: %w", city, err)
	}

	return Weather{
		Temp:      strconv.Itoa(int(math.Round(forecast.CurrentWeather.Temperature))),
		Condition: WeatherCondition(forecast.CurrentWeather.WeatherCode),
	}, nil
}

func (w *OpenMeteoWeather) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// WeatherCondition maps a WMO weather code to a short label.
func WeatherCondition(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 2:
		return "Partly Cloudy"
	case code == 3:
		return "Cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Showers"
	case code >= 85 && code <= 86:
		return "Snow Showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Clear"
	}
}
