package geo

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

// earthRadiusM is the mean Earth radius.
const earthRadiusM = 6371008.8

const squareMetresPerHectare = 10_000

// ErrNotPolygon is returned for GeoJSON geometries other than a polygon.
var ErrNotPolygon = errors.New("geometry is not a polygon")

// Bounds is a latitude/longitude bounding box in degrees.
type Bounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// Contains reports whether c lies inside the box, edges included.
func (b Bounds) Contains(c valueobject.Coordinates) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLng && c.Longitude <= b.MaxLng
}

// Boundary is a registered field outline. Holes are ignored.
type Boundary struct {
	loop   *s2.Loop
	bounds Bounds
}

// ParseBoundary reads a GeoJSON polygon with [lng, lat] positions.
func ParseBoundary(data []byte) (*Boundary, error) {
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GeoJSON: %w", err)
	}
	polygon, ok := g.(*geom.Polygon)
	if !ok {
		return nil, ErrNotPolygon
	}
	if polygon.NumLinearRings() == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}

	coords := polygon.LinearRing(0).Coords()
	// GeoJSON rings repeat the first position at the end; S2 loops are
	// implicitly closed.
	if n := len(coords); n > 1 && coords[0].X() == coords[n-1].X() && coords[0].Y() == coords[n-1].Y() {
		coords = coords[:n-1]
	}
	if len(coords) < 3 {
		return nil, fmt.Errorf("polygon ring needs at least 3 distinct positions, got %d", len(coords))
	}

	points := make([]s2.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X())))
	}
	loop := s2.LoopFromPoints(points)
	loop.Normalize()

	b := polygon.Bounds()
	return &Boundary{
		loop: loop,
		bounds: Bounds{
			MinLat: b.Min(1), MinLng: b.Min(0),
			MaxLat: b.Max(1), MaxLng: b.Max(0),
		},
	}, nil
}

func (b *Boundary) Bounds() Bounds { return b.bounds }

// Contains reports whether c falls inside the outline.
func (b *Boundary) Contains(c valueobject.Coordinates) bool {
	return b.loop.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(c.Latitude, c.Longitude)))
}

// AreaHectares is the enclosed area on a spherical Earth.
func (b *Boundary) AreaHectares() float64 {
	return b.loop.Area() * earthRadiusM * earthRadiusM / squareMetresPerHectare
}
