package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
)

// Client implements domain.CentroidLocator using the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/geocoding/v5/mapbox.places",
		metrics: metrics,
		logger:  logger,
	}
}

// Locate forward-geocodes the full name of a region and returns the centre
// of the best match. A zero Geo with a nil error means no match.
func (c *Client) Locate(ctx context.Context, code domain.RegionCode) (domain.Geo, error) {
	name, ok := domain.RegionName(code)
	if !ok {
		return domain.Geo{}, eris.Errorf("unknown region %q", code)
	}

	u := c.baseURL + "/" + url.PathEscape(name) + ".json"
	params := url.Values{
		"access_token": {c.token},
		"limit":        {"1"},
		"types":        {"region"},
		"country":      {"us"},
	}

	geo, err := c.doRequest(ctx, u+"?"+params.Encode())
	switch {
	case err != nil:
		c.metrics.CentroidLookups.WithLabelValues("error").Inc()
	case geo == (domain.Geo{}):
		c.metrics.CentroidLookups.WithLabelValues("empty").Inc()
	default:
		c.metrics.CentroidLookups.WithLabelValues("success").Inc()
	}
	return geo, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.Geo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Geo{}, eris.Wrap(err, "create request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.CentroidAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.Geo{}, eris.Wrap(err, "geocode request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Geo{}, eris.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var mapboxResp response
	if err := json.NewDecoder(resp.Body).Decode(&mapboxResp); err != nil {
		return domain.Geo{}, eris.Wrap(err, "decode response")
	}

	if len(mapboxResp.Features) == 0 || len(mapboxResp.Features[0].Center) != 2 {
		return domain.Geo{}, nil
	}

	f := mapboxResp.Features[0]
	c.logger.Debug("centroid located", "place", f.PlaceName, "relevance", f.Relevance)
	return domain.Geo{Lon: f.Center[0], Lat: f.Center[1]}, nil
}

// Mapbox API response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Relevance float64   `json:"relevance"`
}
