// Package openrouteservice provides a client for the OpenRouteService directions API.
package openrouteservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/route"
	"github.com/voltroute/voltroute/pkg/geo"
	"github.com/voltroute/voltroute/pkg/polyline"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "openrouteservice"

	// DefaultBaseURL is the OpenRouteService API base URL.
	DefaultBaseURL = "https://api.openrouteservice.org"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// drivingProfile is the ORS routing profile for passenger cars.
	drivingProfile = "driving-car"

	// ORS error code for unroutable coordinates.
	orsErrorCodeNotFound = 2010
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OpenRouteService client.
type ClientConfig struct {
	// APIKey is the ORS API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to ORS API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenRouteService API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new OpenRouteService client.
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

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetRoute computes a driving route between two points.
func (c *Client) GetRoute(ctx context.Context, from, to geo.Point) (*route.Route, error) {
	if !from.Valid() {
		return nil, &route.Error{
			Provider: ProviderName,
			Code:     "INVALID_ORIGIN",
			Message:  "invalid origin coordinates",
			Err:      route.ErrInvalidCoordinates,
		}
	}
	if !to.Valid() {
		return nil, &route.Error{
			Provider: ProviderName,
			Code:     "INVALID_DESTINATION",
			Message:  "invalid destination coordinates",
			Err:      route.ErrInvalidCoordinates,
		}
	}

	// ORS uses [lon, lat] order (GeoJSON).
	body, err := json.Marshal(orsRequest{
		Coordinates: [][]float64{
			{from.Lon, from.Lat},
			{to.Lon, to.Lat},
		},
		Geometry: true,
		Units:    "m",
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s", c.baseURL, drivingProfile)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.apiKey)
	httpReq.Header.Set("Accept", "application/json, application/geo+json")

	c.logger.Debug().
		Float64("from_lat", from.Lat).
		Float64("from_lon", from.Lon).
		Float64("to_lat", to.Lat).
		Float64("to_lon", to.Lon).
		Msg("requesting directions from ORS")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &route.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach routing provider",
			Err:      route.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode, respBody)
	}

	var orsResp orsResponse
	if err := json.Unmarshal(respBody, &orsResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(orsResp.Routes) == 0 {
		return nil, &route.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "provider returned no routes",
			Err:      route.ErrNoRouteFound,
		}
	}

	result := toRoute(&orsResp.Routes[0])

	c.logger.Debug().
		Float64("distance_km", result.DistanceKm).
		Float64("duration_h", result.DurationH).
		Msg("received directions from ORS")

	return result, nil
}

// handleErrorResponse maps ORS error responses to domain errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var orsErr orsErrorResponse
	if err := json.Unmarshal(body, &orsErr); err != nil {
		return &route.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  fmt.Sprintf("routing provider returned status %d", statusCode),
			Err:      route.ErrProviderUnavailable,
		}
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return &route.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      route.ErrRateLimitExceeded,
		}
	case http.StatusForbidden:
		return &route.Error{
			Provider: ProviderName,
			Code:     "FORBIDDEN",
			Message:  "API access denied - check API key configuration",
			Err:      route.ErrProviderUnavailable,
		}
	case http.StatusNotFound:
		return &route.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "no route found between the given points",
			Err:      route.ErrNoRouteFound,
		}
	case http.StatusBadRequest:
		if orsErr.Error.Code == orsErrorCodeNotFound {
			return &route.Error{
				Provider: ProviderName,
				Code:     "NO_ROUTE",
				Message:  orsErr.Error.Message,
				Err:      route.ErrNoRouteFound,
			}
		}
		return &route.Error{
			Provider: ProviderName,
			Code:     "BAD_REQUEST",
			Message:  orsErr.Error.Message,
			Err:      route.ErrInvalidCoordinates,
		}
	default:
		if statusCode >= 500 {
			return &route.Error{
				Provider: ProviderName,
				Code:     fmt.Sprintf("SERVER_%d", statusCode),
				Message:  "routing provider is temporarily unavailable",
				Err:      route.ErrProviderUnavailable,
			}
		}
		return &route.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  orsErr.Error.Message,
			Err:      route.ErrProviderUnavailable,
		}
	}
}

// toRoute converts an ORS route to the domain model. Distances arrive in
// meters and durations in seconds. The encoded geometry is kept only when it
// decodes to an actual path; anything shorter is useless to a map client.
func toRoute(r *orsRoute) *route.Route {
	distanceKm := math.Round(r.Summary.Distance/1000*10) / 10
	durationH := math.Round(r.Summary.Duration/3600*100) / 100

	geometry := r.Geometry
	if len(polyline.Decode(geometry)) < 2 {
		geometry = ""
	}

	return &route.Route{
		DistanceKm: distanceKm,
		DurationH:  durationH,
		Geometry:   geometry,
	}
}

// ORS API request/response structures.

type orsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Geometry    bool        `json:"geometry"`
	Units       string      `json:"units"`
}

type orsResponse struct {
	Routes []orsRoute `json:"routes"`
}

type orsRoute struct {
	Summary struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"summary"`
	Geometry string `json:"geometry"`
}

type orsErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
