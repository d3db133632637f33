package valueobject

import (
	"fmt"
	"strings"
)

// DamageType is the claimed cause of crop loss.
type DamageType struct {
	value string
}

var (
	DamageDrought = DamageType{value: "drought"}
	DamageFlood   = DamageType{value: "flood"}
	DamageHail    = DamageType{value: "hail"}
	DamageFrost   = DamageType{value: "frost"}
	DamagePest    = DamageType{value: "pest"}
	DamageDisease = DamageType{value: "disease"}
	DamageOther   = DamageType{value: "other"}
)

// NewDamageType normalizes name to lower case. Unlisted causes are accepted.
func NewDamageType(name string) (DamageType, error) {
	v := strings.ToLower(strings.TrimSpace(name))
	if v == "" {
		return DamageType{}, fmt.Errorf("damage type is required")
	}
	return DamageType{value: v}, nil
}

func (d DamageType) String() string { return d.value }

func (d DamageType) IsZero() bool { return d.value == "" }

func (d DamageType) Equal(other DamageType) bool { return d.value == other.value }
