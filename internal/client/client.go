package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"weatherapp/internal/models"
	"weatherapp/pkg/observe"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches weather reports from the lookup endpoint. One synchronous
// request per call; failures are terminal, the caller retries by calling
// again.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	l          *observe.Logger
}

func New(baseURL string, l *observe.Logger, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		l:          l,
	}
}

// Lookup requests the report for a location name. Non-2xx responses surface
// the endpoint's error message when the body parses, otherwise a generic
// status line; a 2xx body carrying an error field is also a failure.
func (c *Client) Lookup(ctx context.Context, location string) (*models.WeatherReport, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("Please enter a location.")
	}

	reqURL := fmt.Sprintf("%s/api/weather?location=%s", c.baseURL, url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errMsg := fmt.Sprintf("Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		var report models.WeatherReport
		if jsonErr := json.Unmarshal(body, &report); jsonErr == nil && report.Error != nil {
			errMsg = *report.Error
		}
		return nil, errors.New(errMsg)
	}

	var report models.WeatherReport
	if err = json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if report.Error != nil {
		return nil, errors.New(*report.Error)
	}

	if report.Location == nil || report.Current == nil {
		c.l.Warning("received incomplete weather data", map[string]any{
			"location":    location,
			"hasLocation": report.Location != nil,
			"hasCurrent":  report.Current != nil,
		})
	}

	return &report, nil
}
