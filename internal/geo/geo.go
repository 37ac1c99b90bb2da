// Package geo wraps the external geocode and static-map providers.
package geo

import "context"

type Coordinates struct {
	Lat float64
	Lon float64
}

type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Result of a geocode lookup. Found=false means the provider answered but
// knows no such place; that is not an error.
type Result struct {
	Found  bool
	Coords Coordinates
	Box    BoundingBox
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

type MapFetcher interface {
	FetchMap(ctx context.Context, coords Coordinates, box BoundingBox) ([]byte, error)
}

// fallbackSpanDeg is used when the provider returns a point without a
// bounding box: ~2km at the equator on each side.
const fallbackSpanDeg = 0.02

// BoxAround derives a bounding box centered on coords.
func BoxAround(coords Coordinates) BoundingBox {
	return BoundingBox{
		MinLat: coords.Lat - fallbackSpanDeg,
		MaxLat: coords.Lat + fallbackSpanDeg,
		MinLon: coords.Lon - fallbackSpanDeg,
		MaxLon: coords.Lon + fallbackSpanDeg,
	}
}

// Zero reports whether the box is unset.
func (b BoundingBox) Zero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLon == 0 && b.MaxLon == 0
}
