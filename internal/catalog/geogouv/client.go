// Package geogouv provides a client for the French government commune API.
package geogouv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/catalog"
)

const (
	// ProviderName identifies this city directory provider.
	ProviderName = "geogouv"

	// DefaultBaseURL is the geo.api.gouv.fr base URL.
	DefaultBaseURL = "https://geo.api.gouv.fr"

	// DefaultTimeout covers the full unpaginated commune listing.
	DefaultTimeout = 20 * time.Second

	// DefaultMinPopulation keeps only communes large enough to anchor a trip.
	DefaultMinPopulation = 100000
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the commune API client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to geo.api.gouv.fr).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 20s).
	Timeout time.Duration

	// MinPopulation is the smallest commune population kept in the
	// directory (optional, defaults to 100000).
	MinPopulation int

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a geo.api.gouv.fr client for the city directory.
type Client struct {
	baseURL       string
	httpClient    HTTPDoer
	minPopulation int
	logger        zerolog.Logger
}

// NewClient creates a new commune API client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	minPopulation := cfg.MinPopulation
	if minPopulation <= 0 {
		minPopulation = DefaultMinPopulation
	}

	return &Client{
		baseURL:       baseURL,
		httpClient:    httpClient,
		minPopulation: minPopulation,
		logger:        cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchCities retrieves all communes above the population threshold, keyed by
// normalized name. Communes that normalize to the same key overwrite each
// other; the listing order decides which survives.
func (c *Client) FetchCities(ctx context.Context) (map[string]catalog.City, error) {
	q := url.Values{}
	q.Set("fields", "nom,centre,population")
	q.Set("format", "json")

	reqURL := fmt.Sprintf("%s/communes?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var communes []commune
	if err := json.NewDecoder(resp.Body).Decode(&communes); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	cities := c.toCities(communes)
	if len(cities) == 0 {
		return nil, errors.New("commune listing returned no usable cities")
	}

	c.logger.Debug().
		Int("listed", len(communes)).
		Int("kept", len(cities)).
		Msg("fetched city directory from geo.api.gouv.fr")

	return cities, nil
}

// toCities converts communes to domain cities, keeping only those above the
// population threshold with usable coordinates.
func (c *Client) toCities(communes []commune) map[string]catalog.City {
	cities := make(map[string]catalog.City)

	for i := range communes {
		row := &communes[i]
		if row.Population < c.minPopulation || row.Nom == "" {
			continue
		}
		// GeoJSON coordinates are [lon, lat].
		if len(row.Centre.Coordinates) < 2 {
			continue
		}

		key := catalog.CityKey(row.Nom)
		cities[key] = catalog.City{
			Key:        key,
			Name:       row.Nom,
			Lat:        row.Centre.Coordinates[1],
			Lon:        row.Centre.Coordinates[0],
			Population: row.Population,
		}
	}

	return cities
}

// geo.api.gouv.fr response structures.

type commune struct {
	Nom    string `json:"nom"`
	Centre struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"centre"`
	Population int `json:"population"`
}
