// Package irve provides a client for the French IRVE public charging station
// registry hosted on OpenDataSoft.
package irve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltroute/voltroute/internal/station"
	"github.com/voltroute/voltroute/pkg/geo"
)

const (
	// ProviderName identifies this station directory provider.
	ProviderName = "irve"

	// DefaultBaseURL is the OpenDataSoft records API base URL.
	DefaultBaseURL = "https://public.opendatasoft.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// dataset is the IRVE charging station dataset identifier.
	dataset = "bornes-irve"

	// maxRows bounds how many candidates to fetch per lookup.
	maxRows = 5
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the IRVE client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to OpenDataSoft).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an IRVE registry client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new IRVE client.
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
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// FindNearest returns the closest charging station within radiusKm of p.
func (c *Client) FindNearest(ctx context.Context, p geo.Point, radiusKm float64) (*station.Station, error) {
	q := url.Values{}
	q.Set("dataset", dataset)
	q.Set("geofilter.distance", fmt.Sprintf("%f,%f,%d", p.Lat, p.Lon, int(radiusKm*1000)))
	q.Set("rows", strconv.Itoa(maxRows))
	q.Set("sort", "dist")

	reqURL := fmt.Sprintf("%s/api/records/1.0/search/?%s", c.baseURL, q.Encode())
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

	var odsResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&odsResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	for i := range odsResp.Records {
		if st, ok := toStation(&odsResp.Records[i]); ok {
			return st, nil
		}
	}

	return nil, station.ErrNoStationFound
}

// toStation converts an IRVE record to the domain model. Records without
// coordinates are unusable.
func toStation(r *record) (*station.Station, bool) {
	// IRVE coordinates are [lat, lon].
	if len(r.Fields.CoordonneesXY) < 2 {
		return nil, false
	}

	name := r.Fields.NStation
	if name == "" {
		name = "Charging station"
	}

	power := string(r.Fields.PuissMax)
	if power == "" {
		power = "N/A"
	}

	return &station.Station{
		ID:        r.RecordID,
		Name:      name,
		Address:   r.Fields.AdStation,
		Operator:  r.Fields.NAmenageur,
		Power:     power,
		PlugType:  r.Fields.TypePrise,
		Lat:       r.Fields.CoordonneesXY[0],
		Lon:       r.Fields.CoordonneesXY[1],
		Available: true,
	}, true
}

// OpenDataSoft records API response structures.

type searchResponse struct {
	NHits   int      `json:"nhits"`
	Records []record `json:"records"`
}

type record struct {
	RecordID string `json:"recordid"`
	Fields   struct {
		NStation      string     `json:"n_station"`
		AdStation     string     `json:"ad_station"`
		NAmenageur    string     `json:"n_amenageur"`
		PuissMax      flexString `json:"puiss_max"`
		TypePrise     string     `json:"type_prise"`
		CoordonneesXY []float64  `json:"coordonneesxy"`
	} `json:"fields"`
}

// flexString tolerates fields published as either strings or numbers. The
// IRVE dataset is crowd-maintained and mixes both; a station must never be
// discarded over the formatting of its power rating.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*f = ""
			return nil
		}
		*f = flexString(strings.TrimSpace(unquoted))
		return nil
	}

	*f = flexString(s)
	return nil
}
