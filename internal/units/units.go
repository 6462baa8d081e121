// Package units provides shared constants and validation for page-size units
// used when exporting raster maps.
package units

// Unit constants
const (
	Inch       = "in"
	Centimeter = "cm"
	Millimeter = "mm"
	Pixel      = "px"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Inch, Centimeter, Millimeter, Pixel}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "in, cm, mm, px"
}

// ToInches converts a page dimension to inches. Pixel values need the target
// resolution because a pixel has no physical size until a DPI is chosen.
func ToInches(value float64, unit string, dpi int) float64 {
	if dpi <= 0 {
		dpi = 96 // CSS reference pixel density
	}
	switch unit {
	case Centimeter:
		return value / 2.54
	case Millimeter:
		return value / 25.4
	case Pixel:
		return value / float64(dpi)
	case Inch:
		return value
	default:
		return value // default to inches if unknown unit
	}
}

// ToPixels converts a page dimension to whole output pixels at the given DPI.
func ToPixels(value float64, unit string, dpi int) int {
	if dpi <= 0 {
		dpi = 96
	}
	if unit == Pixel {
		return int(value + 0.5)
	}
	return int(ToInches(value, unit, dpi)*float64(dpi) + 0.5)
}
