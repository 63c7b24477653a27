package agriassist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"
)

const (
	openWeatherEndpoint   = "https://api.openweathermap.org/data/2.5/weather"
	weatherRequestTimeout = 10 * time.Second

	// Pune, used when the client sends no coordinates.
	defaultLatitude  = "18.52"
	defaultLongitude = "73.86"
)

// WeatherReport is the reshaped subset of the provider response that the
// frontend consumes.
type WeatherReport struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Wind        float64 `json:"wind"`
	Cloudiness  int     `json:"cloudiness"`
	RainChance  int     `json:"rainChance"`
	Location    string  `json:"location"`
	Country     string  `json:"country"`
}

// Weather proxies current conditions from openweathermap.
type Weather struct {
	APIKey string

	// BaseURL overrides the provider endpoint (used in tests).
	BaseURL string

	HTTPClient *http.Client
}

// openWeatherResponse mirrors the fields we read from the provider.
type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Name string `json:"name"`
}

// HandleGet fetches and reshapes current weather for the requested
// coordinates. Any provider failure answers with a generic unavailable
// message.
func (ws *Weather) HandleGet(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" {
		lat = defaultLatitude
	}
	if lon == "" {
		lon = defaultLongitude
	}

	report, err := ws.fetch(r, lat, lon)
	if err != nil {
		slog.Warn("weather lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Weather not available")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (ws *Weather) fetch(r *http.Request, lat, lon string) (*WeatherReport, error) {
	endpoint := ws.BaseURL
	if endpoint == "" {
		endpoint = openWeatherEndpoint
	}

	query := url.Values{}
	query.Set("lat", lat)
	query.Set("lon", lon)
	query.Set("appid", ws.APIKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := ws.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request failed: status %d", resp.StatusCode)
	}

	var data openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(data.Weather) == 0 {
		return nil, fmt.Errorf("weather response missing conditions")
	}

	rainChance := 0
	if data.Clouds.All > 50 {
		rainChance = int(math.Round(data.Clouds.All))
	}

	return &WeatherReport{
		Temp:        data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		Pressure:    data.Main.Pressure,
		Description: data.Weather[0].Description,
		Icon:        data.Weather[0].Icon,
		Wind:        data.Wind.Speed,
		Cloudiness:  int(data.Clouds.All),
		RainChance:  rainChance,
		Location:    data.Name,
		Country:     data.Sys.Country,
	}, nil
}

func (ws *Weather) httpClient() *http.Client {
	if ws.HTTPClient != nil {
		return ws.HTTPClient
	}
	return &http.Client{Timeout: weatherRequestTimeout}
}
