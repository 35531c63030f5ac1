// Package chargetrip provides a client for the Chargetrip vehicle database.
package chargetrip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/catalog"
)

const (
	// ProviderName identifies this vehicle directory provider.
	ProviderName = "chargetrip"

	// DefaultBaseURL is the Chargetrip GraphQL endpoint.
	DefaultBaseURL = "https://api.chargetrip.io/graphql"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// defaultAutonomyKm is used when a vehicle has no published range.
	defaultAutonomyKm = 350

	// defaultBatteryKWh is used when a vehicle has no published capacity.
	defaultBatteryKWh = 50.0

	// defaultSeats is used when a vehicle has no published seat count.
	defaultSeats = 5

	// minAutonomyKm filters out city quadricycles and bad catalog rows.
	minAutonomyKm = 100

	// pageSize is how many vehicles to request per listing call.
	pageSize = 20
)

// ErrMissingCredentials is returned when the client has no API credentials.
var ErrMissingCredentials = errors.New("chargetrip credentials not configured")

// vehicleListQuery fetches the fields needed to build the catalog.
const vehicleListQuery = `query vehicleList($page: Int, $size: Int) {
  vehicleList(page: $page, size: $size) {
    id
    naming { make model chargetrip_version }
    battery { usable_kwh }
    range { chargetrip_range { best worst } }
    body { seats }
  }
}`

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Chargetrip client.
type ClientConfig struct {
	// ClientID is the Chargetrip x-client-id header value (required).
	ClientID string

	// AppID is the Chargetrip x-app-id header value (required).
	AppID string

	// BaseURL is the GraphQL endpoint (optional, defaults to Chargetrip).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Chargetrip GraphQL client for the vehicle catalog.
type Client struct {
	clientID   string
	appID      string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Chargetrip client.
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
		clientID:   cfg.ClientID,
		appID:      cfg.AppID,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FetchVehicles retrieves the vehicle catalog from Chargetrip.
func (c *Client) FetchVehicles(ctx context.Context) ([]catalog.Vehicle, error) {
	if c.clientID == "" || c.appID == "" {
		return nil, ErrMissingCredentials
	}

	body, err := json.Marshal(graphqlRequest{
		Query: vehicleListQuery,
		Variables: map[string]any{
			"page": 0,
			"size": pageSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-app-id", c.appID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ctResp graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&ctResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(ctResp.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", ctResp.Errors[0].Message)
	}

	vehicles := c.toVehicles(ctResp.Data.VehicleList)
	if len(vehicles) == 0 {
		return nil, errors.New("vehicle listing returned no usable vehicles")
	}

	c.logger.Debug().
		Int("listed", len(ctResp.Data.VehicleList)).
		Int("kept", len(vehicles)).
		Msg("fetched vehicle catalog from chargetrip")

	return vehicles, nil
}

// toVehicles converts Chargetrip rows to domain vehicles, dropping rows with
// implausible range or capacity.
func (c *Client) toVehicles(list []ctVehicle) []catalog.Vehicle {
	vehicles := make([]catalog.Vehicle, 0, len(list))

	for i := range list {
		row := &list[i]

		autonomy := defaultAutonomyKm
		if r := row.Range.ChargetripRange; r.Best > 0 && r.Worst > 0 {
			autonomy = int((r.Best + r.Worst) / 2)
		}

		// A missing capacity gets a default; an explicit non-positive one
		// marks the row as bad data.
		battery := defaultBatteryKWh
		if row.Battery.UsableKWh != nil {
			battery = *row.Battery.UsableKWh
		}

		if autonomy <= minAutonomyKm || battery <= 0 {
			continue
		}

		seats := row.Body.Seats
		if seats == 0 {
			seats = defaultSeats
		}

		name := row.Naming.Make + " " + row.Naming.Model
		if row.Naming.ChargetripVersion != "" {
			name += " " + row.Naming.ChargetripVersion
		}

		id := row.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		vehicles = append(vehicles, catalog.Vehicle{
			ID:          id,
			Name:        name,
			Brand:       row.Naming.Make,
			Model:       row.Naming.Model,
			AutonomyKm:  autonomy,
			BatteryKWh:  battery,
			ChargeTimeH: chargeTimeHours(battery),
			Seats:       seats,
		})
	}

	return vehicles
}

// chargeTimeHours estimates a fast-charge duration from usable capacity at a
// 50 kW average session rate, rounded to two decimals.
func chargeTimeHours(batteryKWh float64) float64 {
	return math.Round(batteryKWh/50*100) / 100
}

// Chargetrip GraphQL request/response structures.

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data struct {
		VehicleList []ctVehicle `json:"vehicleList"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type ctVehicle struct {
	ID     string `json:"id"`
	Naming struct {
		Make              string `json:"make"`
		Model             string `json:"model"`
		ChargetripVersion string `json:"chargetrip_version"`
	} `json:"naming"`
	Battery struct {
		UsableKWh *float64 `json:"usable_kwh"`
	} `json:"battery"`
	Range struct {
		ChargetripRange struct {
			Best  float64 `json:"best"`
			Worst float64 `json:"worst"`
		} `json:"chargetrip_range"`
	} `json:"range"`
	Body struct {
		Seats int `json:"seats"`
	} `json:"body"`
}
