// Package colorspace converts between hexadecimal color strings, RGB triples
// and HSL triples.
//
// All functions are pure and safe for concurrent use.
//
// # Hex Format
//
// A hex color is exactly six hexadecimal digits with an optional leading '#'.
// Digits are case-insensitive: "#FF8040", "ff8040" and "#Ff8040" are the same
// color. Three-digit shorthand and alpha suffixes are rejected.
//
// # HSL Representation
//
// HSL values are float64 rounded to two decimal places:
//   - H: hue in degrees, 0 <= H < 360
//   - S: saturation in percent, 0-100
//   - L: lightness in percent, 0-100
//
// Achromatic colors (r == g == b) always report H = 0 and S = 0.
//
// # Errors
//
// Conversion failures wrap one of the sentinel errors so callers can test
// them with errors.Is:
//   - ErrInvalidFormat: the input is not a six-digit hex color
//   - ErrOutOfRange: an RGB component lies outside 0-255
package colorspace
