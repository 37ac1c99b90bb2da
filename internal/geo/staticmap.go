package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/askboard-dev/askboard/internal/errors"
)

// StaticMapClient fetches a rendered map snapshot for a bounding box from a
// static-map endpoint.
type StaticMapClient struct {
	baseURL string
	client  *http.Client
}

func NewStaticMap(baseURL string, timeout time.Duration) *StaticMapClient {
	return &StaticMapClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

const maxMapBytes = 10 << 20

func (c *StaticMapClient) FetchMap(ctx context.Context, coords Coordinates, box BoundingBox) ([]byte, error) {
	if box.Zero() {
		box = BoxAround(coords)
	}
	u := fmt.Sprintf("%s?bbox=%f,%f,%f,%f&center=%f,%f",
		c.baseURL, box.MinLon, box.MinLat, box.MaxLon, box.MaxLat, coords.Lat, coords.Lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ExternalServiceUnavailable, err)
	}
	req.Header.Set("User-Agent", "askboard")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ExternalServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: static map status %d", errors.ExternalServiceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMapBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ExternalServiceUnavailable, err)
	}
	return data, nil
}
