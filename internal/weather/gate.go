// Package weather provides a cached accessor for current conditions at a
// coordinate and pure alert rules over a snapshot.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"sidekick/internal/constants"
	"sidekick/internal/logger"
)

// Snapshot is the subset of provider fields the reminder engine consumes.
// When Err is set the fetch failed and the remaining fields hold neutral
// values: callers must treat that as "unknown", not as confirmed clear
// weather.
type Snapshot struct {
	Temperature float64   `json:"temperature"`
	CloudCover  float64   `json:"cloudCover"` // percentage [0,100]
	Raining     bool      `json:"raining"`
	Snowing     bool      `json:"snowing"`
	RainMM      float64   `json:"rain"`
	WeatherCode int       `json:"weatherCode"`
	FetchedAt   time.Time `json:"fetchedAt"`
	Err         bool      `json:"error,omitempty"`
}

type cacheEntry struct {
	snapshot  Snapshot
	fetchedAt time.Time
}

// Gate fetches current weather and caches it per coordinate pair for a fixed
// freshness window. Stale entries are refreshed on the next query; a query
// never fails, it degrades to an error-flagged snapshot.
type Gate struct {
	baseURL string
	ttl     time.Duration
	client  *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry

	// now is swappable for tests
	now func() time.Time
}

// NewGate creates a gate against the given provider base URL. A zero ttl
// falls back to the default freshness window.
func NewGate(baseURL string, ttl time.Duration) *Gate {
	if baseURL == "" {
		baseURL = constants.DefaultWeatherProviderURL
	}
	if ttl <= 0 {
		ttl = constants.DefaultWeatherCacheTTL
	}
	return &Gate{
		baseURL: baseURL,
		ttl:     ttl,
		client:  &http.Client{Timeout: constants.WeatherFetchTimeout},
		cache:   make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Current returns the weather at (lat, lon), served from cache while fresh.
// Overlapping fetches for the same key are allowed; the cache write is
// idempotent per key.
func (g *Gate) Current(ctx context.Context, lat, lon float64) Snapshot {
	key := cacheKey(lat, lon)

	g.mu.Lock()
	entry, ok := g.cache[key]
	g.mu.Unlock()
	if ok && g.now().Sub(entry.fetchedAt) < g.ttl {
		return entry.snapshot
	}

	snapshot, err := g.fetch(ctx, lat, lon)
	if err != nil {
		logger.Warn("Weather fetch failed", "lat", lat, "lon", lon, "error", err)
		return Snapshot{FetchedAt: g.now(), Err: true}
	}

	g.mu.Lock()
	g.cache[key] = cacheEntry{snapshot: snapshot, fetchedAt: snapshot.FetchedAt}
	g.mu.Unlock()

	return snapshot
}

// currentResponse mirrors the provider's current-conditions payload.
type currentResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
		Precipitation float64 `json:"precipitation"`
		Rain          float64 `json:"rain"`
		Showers       float64 `json:"showers"`
		Snowfall      float64 `json:"snowfall"`
		CloudCover    float64 `json:"cloud_cover"`
	} `json:"current"`
}

func (g *Gate) fetch(ctx context.Context, lat, lon float64) (Snapshot, error) {
	query := url.Values{}
	query.Set("latitude", formatCoord(lat))
	query.Set("longitude", formatCoord(lon))
	query.Set("current", "temperature_2m,weather_code,precipitation,rain,showers,snowfall,cloud_cover")
	query.Set("temperature_unit", "celsius")
	query.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Snapshot{}, err
	}

	res, err := g.client.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("weather provider returned status %d", res.StatusCode)
	}

	var payload currentResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	current := payload.Current
	return Snapshot{
		Temperature: current.Temperature,
		CloudCover:  current.CloudCover,
		Raining:     current.Precipitation > 0 || current.Rain > 0 || current.Showers > 0,
		Snowing:     current.Snowfall > 0,
		RainMM:      current.Rain,
		WeatherCode: current.WeatherCode,
		FetchedAt:   g.now(),
	}, nil
}

// cacheKey is the exact coordinate pair as given, no rounding.
func cacheKey(lat, lon float64) string {
	return formatCoord(lat) + "," + formatCoord(lon)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
