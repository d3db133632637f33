package valueobject

import (
	"fmt"
	"strings"
)

// CropType names the insured crop. The set is open; crops without a known
// growth cycle are accepted but skip cycle-based checks.
type CropType struct {
	value string
}

var (
	CropWheat     = CropType{value: "wheat"}
	CropRice      = CropType{value: "rice"}
	CropCotton    = CropType{value: "cotton"}
	CropSugarcane = CropType{value: "sugarcane"}
)

// HarvestWindow is the expected range of days from sowing to harvest, both
// ends inclusive.
type HarvestWindow struct {
	MinDays int
	MaxDays int
}

// Contains reports whether days falls inside the window.
func (w HarvestWindow) Contains(days int) bool {
	return days >= w.MinDays && days <= w.MaxDays
}

var harvestWindows = map[string]HarvestWindow{
	"wheat":     {MinDays: 60, MaxDays: 180},
	"rice":      {MinDays: 90, MaxDays: 150},
	"cotton":    {MinDays: 90, MaxDays: 200},
	"sugarcane": {MinDays: 180, MaxDays: 365},
}

// NewCropType normalizes name to lower case.
func NewCropType(name string) (CropType, error) {
	v := strings.ToLower(strings.TrimSpace(name))
	if v == "" {
		return CropType{}, fmt.Errorf("crop type is required")
	}
	return CropType{value: v}, nil
}

func (c CropType) HarvestWindow() (HarvestWindow, bool) {
	w, ok := harvestWindows[c.value]
	return w, ok
}

// IsShortCycleCereal is true for wheat and rice.
func (c CropType) IsShortCycleCereal() bool {
	return c.value == "wheat" || c.value == "rice"
}

func (c CropType) String() string { return c.value }

func (c CropType) IsZero() bool { return c.value == "" }
