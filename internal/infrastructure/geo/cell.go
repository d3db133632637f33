// Package geo holds the spherical geometry behind the field registry: S2 cell
// keys for claim coordinates and field boundaries parsed from GeoJSON.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

// ClaimCellLevel is the S2 level used to key claim locations. Level 22 cells
// are roughly 2 m across, so two claims in the same cell share a spot.
const ClaimCellLevel = 22

// CacheCellLevel buckets provider lookups. Level 16 cells are roughly 150 m
// across, finer than any weather or imagery grid the providers serve.
const CacheCellLevel = 16

// CellID returns the S2 cell containing c at level.
func CellID(c valueobject.Coordinates, level int) s2.CellID {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(c.Latitude, c.Longitude)).Parent(level)
}

// ClaimCell is the cell key stored for a claim location.
func ClaimCell(c valueobject.Coordinates) int64 {
	return int64(CellID(c, ClaimCellLevel))
}

// CellToken is the compact string form of the cell at level, used in cache
// keys.
func CellToken(c valueobject.Coordinates, level int) string {
	return CellID(c, level).ToToken()
}
