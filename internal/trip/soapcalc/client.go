// Package soapcalc provides a client for the legacy SOAP trip calculation
// service.
package soapcalc

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ProviderName identifies this calculation provider.
	ProviderName = "soapcalc"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	// serviceNamespace is the SOAP target namespace of the calc service.
	serviceNamespace = "fr.usmb.info802.evtrip.soap"

	soapEnvNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
)

// ErrCalculationFailed indicates the service rejected the inputs.
var ErrCalculationFailed = errors.New("calculation service rejected inputs")

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the SOAP calc client.
type ClientConfig struct {
	// Endpoint is the SOAP service URL (required).
	Endpoint string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a SOAP 1.1 client for the trip calculation service.
type Client struct {
	endpoint   string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new SOAP calc client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CalculateStops asks the service how many charging stops a trip needs.
func (c *Client) CalculateStops(ctx context.Context, distanceKm, autonomyKm float64) (int, error) {
	result, err := c.call(ctx, "calculate_number_of_stops", []param{
		{Name: "distance", Value: distanceKm},
		{Name: "autonomy", Value: autonomyKm},
	})
	if err != nil {
		return 0, err
	}
	return int(result), nil
}

// CalculateTravelTime asks the service for the total trip duration in hours.
func (c *Client) CalculateTravelTime(ctx context.Context, distanceKm, autonomyKm, chargeTimeH float64) (float64, error) {
	return c.call(ctx, "calculate_travel_time", []param{
		{Name: "distance", Value: distanceKm},
		{Name: "autonomy", Value: autonomyKm},
		{Name: "charge_time", Value: chargeTimeH},
	})
}

// call executes one SOAP method and extracts its result. The service signals
// bad inputs with a -1 result instead of a fault.
func (c *Client) call(ctx context.Context, method string, params []param) (float64, error) {
	if c.endpoint == "" {
		return 0, errors.New("soap endpoint not configured")
	}

	body := buildEnvelope(method, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	result, err := parseResult(respBody, method)
	if err != nil {
		return 0, err
	}

	if result < 0 {
		return 0, ErrCalculationFailed
	}

	c.logger.Debug().
		Str("method", method).
		Float64("result", result).
		Msg("soap calculation completed")

	return result, nil
}

// param is one named argument of a SOAP method call.
type param struct {
	Name  string
	Value float64
}

// buildEnvelope serializes a SOAP 1.1 request envelope. The service expects
// every argument inside a single element named after the method, in the
// service namespace.
func buildEnvelope(method string, params []param) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	buf.WriteString(`<soapenv:Envelope xmlns:soapenv="` + soapEnvNamespace + `" xmlns:tns="` + serviceNamespace + `">`)
	buf.WriteString(`<soapenv:Body>`)
	buf.WriteString(`<tns:` + method + `>`)

	for _, p := range params {
		fmt.Fprintf(&buf, `<tns:%s>%g</tns:%s>`, p.Name, p.Value, p.Name)
	}

	buf.WriteString(`</tns:` + method + `>`)
	buf.WriteString(`</soapenv:Body>`)
	buf.WriteString(`</soapenv:Envelope>`)

	return buf.Bytes()
}

// parseResult walks the response envelope to <method>Response/<method>Result.
func parseResult(body []byte, method string) (float64, error) {
	var envelope responseEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return 0, fmt.Errorf("decoding envelope: %w", err)
	}

	if envelope.Body.Fault != nil {
		return 0, fmt.Errorf("soap fault: %s", envelope.Body.Fault.String)
	}

	for _, el := range envelope.Body.Elements {
		if el.XMLName.Local != method+"Response" {
			continue
		}
		for _, child := range el.Children {
			if child.XMLName.Local == method+"Result" {
				value, err := strconv.ParseFloat(strings.TrimSpace(child.Value), 64)
				if err != nil {
					return 0, fmt.Errorf("parsing result %q: %w", child.Value, err)
				}
				return value, nil
			}
		}
	}

	return 0, fmt.Errorf("response has no %sResult element", method)
}

// SOAP response envelope structures.

type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault    *soapFault   `xml:"Fault"`
	Elements []anyElement `xml:",any"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

type anyElement struct {
	XMLName  xml.Name
	Value    string       `xml:",chardata"`
	Children []anyElement `xml:",any"`
}
