package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"iweather/internal/models"
	"iweather/pkg/logger"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
)

// WeatherProvider is what the weather service consumes: current conditions
// resolved by city name or coordinates, plus the 3-hour forecast list for
// coordinates the current call returned.
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city, units, lang string) (*models.CurrentConditions, error)
	CurrentByCoords(ctx context.Context, lat, lon float64, units, lang string) (*models.CurrentConditions, error)
	Forecast(ctx context.Context, lat, lon float64, units, lang string) ([]models.ForecastSample, error)
}

// OpenWeatherRepository talks to the OpenWeatherMap 2.5 API.
type OpenWeatherRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherRepository(apiKey string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}

	return &OpenWeatherRepository{
		BaseURL:    OpenWeatherBaseURL,
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
	}, nil
}

type currentWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
		Pressure int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp    float64 `json:"temp"`
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

func (o *OpenWeatherRepository) CurrentByCity(ctx context.Context, city, units, lang string) (*models.CurrentConditions, error) {
	q := url.Values{}
	q.Set("q", city)
	return o.current(ctx, q, units, lang)
}

func (o *OpenWeatherRepository) CurrentByCoords(ctx context.Context, lat, lon float64, units, lang string) (*models.CurrentConditions, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	return o.current(ctx, q, units, lang)
}

func (o *OpenWeatherRepository) current(ctx context.Context, q url.Values, units, lang string) (*models.CurrentConditions, error) {
	q.Set("units", units)
	q.Set("lang", lang)
	q.Set("appid", o.APIKey)

	o.l.Info("making current-weather API request", map[string]any{
		"query": q.Get("q"), "lat": q.Get("lat"), "lon": q.Get("lon"),
	})

	body, status, err := o.get(ctx, o.BaseURL+"/weather?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, models.ErrCityNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP error (status %d)", status)
	}

	var response currentWeatherResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(response.Weather) == 0 {
		return nil, errors.New("no weather conditions in response")
	}

	return &models.CurrentConditions{
		City:        response.Name,
		Description: response.Weather[0].Description,
		Icon:        response.Weather[0].Icon,
		Temp:        response.Main.Temp,
		TempMin:     response.Main.TempMin,
		TempMax:     response.Main.TempMax,
		Humidity:    response.Main.Humidity,
		Pressure:    response.Main.Pressure,
		WindSpeed:   response.Wind.Speed,
		WindDeg:     response.Wind.Deg,
		Lat:         response.Coord.Lat,
		Lon:         response.Coord.Lon,
	}, nil
}

func (o *OpenWeatherRepository) Forecast(ctx context.Context, lat, lon float64, units, lang string) ([]models.ForecastSample, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("units", units)
	q.Set("lang", lang)
	q.Set("appid", o.APIKey)

	o.l.Info("making forecast API request", map[string]any{"lat": lat, "lon": lon})

	body, status, err := o.get(ctx, o.BaseURL+"/forecast?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP error (status %d)", status)
	}

	var response forecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	o.l.Info("parsed forecast API response", map[string]any{"items": len(response.List)})

	samples := make([]models.ForecastSample, 0, len(response.List))
	for _, item := range response.List {
		sample := models.ForecastSample{
			Timestamp: item.Dt,
			Temp:      item.Main.Temp,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			sample.Icon = item.Weather[0].Icon
			sample.Description = item.Weather[0].Description
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func (o *OpenWeatherRepository) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}
