package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/askboard-dev/askboard/internal/errors"
)

// NominatimClient geocodes free-text locations against a Nominatim-style
// search endpoint.
type NominatimClient struct {
	baseURL string
	client  *http.Client
}

func NewNominatim(baseURL string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// nominatim returns floats as strings and the box as
// [minlat, maxlat, minlon, maxlon].
type nominatimPlace struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	BoundingBox []string `json:"boundingbox"`
}

func (c *NominatimClient) Geocode(ctx context.Context, query string) (Result, error) {
	u := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", errors.ExternalServiceUnavailable, err)
	}
	req.Header.Set("User-Agent", "askboard")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", errors.ExternalServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: geocode status %d", errors.ExternalServiceUnavailable, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Result{}, fmt.Errorf("%w: malformed geocode response: %s", errors.ExternalServiceUnavailable, err)
	}

	if len(places) == 0 {
		return Result{Found: false}, nil
	}

	coords, err := parseCoords(places[0])
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", errors.ExternalServiceUnavailable, err)
	}

	box, ok := parseBox(places[0].BoundingBox)
	if !ok {
		box = BoxAround(coords)
	}

	return Result{Found: true, Coords: coords, Box: box}, nil
}

func parseCoords(p nominatimPlace) (Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("bad latitude %q", p.Lat)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("bad longitude %q", p.Lon)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

func parseBox(raw []string) (BoundingBox, bool) {
	if len(raw) != 4 {
		return BoundingBox{}, false
	}
	vals := make([]float64, 4)
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return BoundingBox{}, false
		}
		vals[i] = v
	}
	return BoundingBox{MinLat: vals[0], MaxLat: vals[1], MinLon: vals[2], MaxLon: vals[3]}, true
}
