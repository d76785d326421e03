package colorspace

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat is returned when a string is not a six-digit hex color.
	ErrInvalidFormat = errors.New("invalid hex color format")

	// ErrOutOfRange is returned when an RGB component is outside 0-255.
	ErrOutOfRange = errors.New("rgb component out of range")
)

var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// RGB represents a color with 8-bit components stored as ints.
//
// Values produced by this package are always within 0-255.
type RGB struct {
	R int `json:"r"` // Red component (0-255)
	G int `json:"g"` // Green component (0-255)
	B int `json:"b"` // Blue component (0-255)
}

// Hex returns the color as "RRGGBB" in uppercase without a leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// HSL represents a color in HSL space, each field rounded to two decimals.
type HSL struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-100 percent
	L float64 `json:"l"` // Lightness: 0-100 percent
}

// ValidateHex reports whether s is six hex digits with an optional leading '#'.
func ValidateHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ValidateRGB reports whether all three components are within 0-255.
func ValidateRGB(r, g, b int) bool {
	return max(r, g, b) <= 255 && min(r, g, b) >= 0
}

// NormalizeHex strips the optional '#' and upper-cases a valid hex color.
//
// Returns an error wrapping ErrInvalidFormat if s is not a valid hex color.
func NormalizeHex(s string) (string, error) {
	if !ValidateHex(s) {
		return "", fmt.Errorf("%w: %q must be 6 hexadecimal digits", ErrInvalidFormat, s)
	}
	return strings.ToUpper(strings.TrimPrefix(s, "#")), nil
}

// HexToRGB parses a hex color such as "#FF8040" or "ff8040".
//
// The digits are read as three byte pairs: red, green, blue.
func HexToRGB(hex string) (RGB, error) {
	norm, err := NormalizeHex(hex)
	if err != nil {
		return RGB{}, err
	}

	v, err := strconv.ParseUint(norm, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return RGB{
		R: int(v >> 16 & 0xFF),
		G: int(v >> 8 & 0xFF),
		B: int(v & 0xFF),
	}, nil
}

// RGBToHSL converts 8-bit RGB components to HSL.
//
// The conversion:
//  1. Normalize each component to 0-1
//  2. Lightness is (max + min) / 2
//  3. If max == min the color is achromatic: hue and saturation are 0
//  4. Saturation is delta / (1 - |2L - 1|)
//  5. Hue depends on which component is the maximum (red, then green, then blue)
//
// Hue, saturation*100 and lightness*100 are rounded to two decimal places.
//
// Returns an error wrapping ErrOutOfRange if any component is outside 0-255.
func RGBToHSL(r, g, b int) (HSL, error) {
	if !ValidateRGB(r, g, b) {
		return HSL{}, fmt.Errorf("%w: red, green and blue must be between 0 and 255, got %d, %d and %d",
			ErrOutOfRange, r, g, b)
	}

	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	hi := max(rf, gf, bf)
	lo := min(rf, gf, bf)
	l := (hi + lo) / 2
	d := hi - lo

	var h, s float64
	if d != 0 {
		s = d / (1 - math.Abs(2*l-1))

		switch hi {
		case rf:
			h = 60 * math.Mod((gf-bf)/d, 6)
			if bf > gf {
				h += 360
			}
		case gf:
			h = 60 * ((bf-rf)/d + 2)
		case bf:
			h = 60 * ((rf-gf)/d + 4)
		}
	}

	return HSL{
		H: round2(h),
		S: round2(s * 100),
		L: round2(l * 100),
	}, nil
}

// HexToHSL parses a hex color and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb.R, rgb.G, rgb.B)
}

// round2 rounds half away from zero to two decimal places.
//
// v*100 is first cut to 15 significant digits so that a value like
// 209.37499999999997, which is 209.375 carrying binary error, still rounds up.
func round2(v float64) float64 {
	scaled := v * 100
	if pre, err := strconv.ParseFloat(strconv.FormatFloat(scaled, 'g', 15, 64), 64); err == nil {
		scaled = pre
	}
	return math.Round(scaled) / 100
}
