package valueobject

import "fmt"

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Valid reports |lat| <= 90 and |lon| <= 180.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// DamagePattern is the imagery classifier's verdict on how damage looks.
type DamagePattern string

const (
	DamagePatternNatural    DamagePattern = "natural"
	DamagePatternArtificial DamagePattern = "artificial"
)
