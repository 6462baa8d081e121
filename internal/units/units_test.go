package units

import (
	"math"
	"testing"
)

func TestToInches(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		dpi      int
		expected float64
	}{
		{"inches pass through", 7.0, Inch, 300, 7.0},
		{"centimeters", 2.54, Centimeter, 300, 1.0},
		{"millimeters", 25.4, Millimeter, 300, 1.0},
		{"A4 width in mm", 210, Millimeter, 300, 8.2677},
		{"pixels at 300 dpi", 600, Pixel, 300, 2.0},
		{"pixels fall back to 96 dpi", 96, Pixel, 0, 1.0},
		{"unknown unit defaults to inches", 3.0, "furlong", 300, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToInches(tt.value, tt.unit, tt.dpi)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ToInches(%f, %s, %d) = %f, want %f", tt.value, tt.unit, tt.dpi, result, tt.expected)
			}
		})
	}
}

func TestToPixels(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		dpi      int
		expected int
	}{
		{"7 inches at 300 dpi", 7.0, Inch, 300, 2100},
		{"pixels pass through regardless of dpi", 1024, Pixel, 300, 1024},
		{"10 cm at 150 dpi", 10, Centimeter, 150, 591},
		{"rounds to nearest pixel", 1.0, Inch, 97, 97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToPixels(tt.value, tt.unit, tt.dpi)
			if result != tt.expected {
				t.Errorf("ToPixels(%f, %s, %d) = %d, want %d", tt.value, tt.unit, tt.dpi, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid in", Inch, true},
		{"valid cm", Centimeter, true},
		{"valid mm", Millimeter, true},
		{"valid px", Pixel, true},
		{"invalid unit", "pt", false},
		{"empty string", "", false},
		{"case sensitive", "IN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestGetValidUnitsString(t *testing.T) {
	expected := "in, cm, mm, px"
	if result := GetValidUnitsString(); result != expected {
		t.Errorf("GetValidUnitsString() = %s, want %s", result, expected)
	}
}
