package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"pluvio/internal/domain"
)

// Endpoints for the Open-Meteo public APIs. Overridable for tests and
// self-hosted mirrors.
type Endpoints struct {
	Geocoding string
	Forecast  string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Geocoding: "https://geocoding-api.open-meteo.com/v1",
		Forecast:  "https://api.open-meteo.com/v1",
	}
}

// openMeteoProvider implements Provider against the Open-Meteo HTTP APIs:
// one call to geocode the postal code, one for the forecast.
type openMeteoProvider struct {
	endpoints Endpoints
	http      *http.Client
}

func NewOpenMeteoProvider(endpoints Endpoints) Provider {
	return &openMeteoProvider{
		endpoints: endpoints,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
	} `json:"current"`
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		PrecipProbMax []int     `json:"precipitation_probability_max"`
		PrecipSum     []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (p *openMeteoProvider) Forecast(ctx context.Context, postalCode string) (*domain.Forecast, error) {
	loc, err := p.geocode(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	q.Set("current", "temperature_2m")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,precipitation_sum")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("precipitation_unit", "inch")
	q.Set("timezone", loc.Timezone)
	q.Set("past_days", "1")
	q.Set("forecast_days", "7")

	var resp forecastResponse
	if err := p.getJSON(ctx, p.endpoints.Forecast+"/forecast?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	out := &domain.Forecast{Location: loc}
	out.Current.TempF = resp.Current.Temperature

	for i, date := range resp.Daily.Time {
		day := domain.ForecastDay{Date: date}
		if i < len(resp.Daily.TempMax) {
			day.HighF = resp.Daily.TempMax[i]
		}
		if i < len(resp.Daily.TempMin) {
			day.LowF = resp.Daily.TempMin[i]
		}
		if i < len(resp.Daily.PrecipProbMax) {
			day.PrecipProbability = resp.Daily.PrecipProbMax[i]
		}
		if i < len(resp.Daily.PrecipSum) {
			day.PrecipInches = resp.Daily.PrecipSum[i]
		}
		// The first row is yesterday (past_days=1); it feeds the trailing
		// 24h rainfall figure rather than the outlook.
		if i == 0 {
			out.Current.Rainfall24hIn = day.PrecipInches
			continue
		}
		out.Daily = append(out.Daily, day)
	}

	return out, nil
}

func (p *openMeteoProvider) geocode(ctx context.Context, postalCode string) (domain.Location, error) {
	q := url.Values{}
	q.Set("name", postalCode)
	q.Set("count", "1")

	var resp geocodeResponse
	if err := p.getJSON(ctx, p.endpoints.Geocoding+"/search?"+q.Encode(), &resp); err != nil {
		return domain.Location{}, err
	}
	if len(resp.Results) == 0 {
		return domain.Location{}, fmt.Errorf("%w: postal code %q", ErrLocationNotFound, postalCode)
	}

	r := resp.Results[0]
	return domain.Location{
		Name:       r.Name,
		PostalCode: postalCode,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		Timezone:   r.Timezone,
	}, nil
}

func (p *openMeteoProvider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: weather api returned status %d", domain.ErrNetwork, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding weather response: %w", err)
	}
	return nil
}
