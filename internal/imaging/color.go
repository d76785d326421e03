package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-color-mcp/internal/catalog"
	"github.com/ironsheep/image-color-mcp/internal/colorspace"
)

// Namer maps a hex color to its nearest named color.
//
// *catalog.Catalog satisfies Namer. A nil result means the namer has no
// entries to match against.
type Namer interface {
	Classify(hex string) (*catalog.NamedColor, error)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = opaque
}

// ColorResult describes one pixel.
type ColorResult struct {
	Hex  string              `json:"hex"` // "#RRGGBB" (no alpha)
	RGB  colorspace.RGB      `json:"rgb"`
	RGBA RGBAColor           `json:"rgba"`
	HSL  colorspace.HSL      `json:"hsl"`
	Name *catalog.NamedColor `json:"name,omitempty"`
}

// pixelRGB returns the straight (non-premultiplied) 8-bit components of c.
// ok is false for fully transparent pixels, which carry no color.
func pixelRGB(c color.Color) (r, g, b uint8, ok bool) {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return 0, 0, 0, false
	}
	r, g, b = col.Clamped().RGB255()
	return r, g, b, true
}

// SampleColor returns the color at (x, y) in several representations.
//
// When namer is non-nil the nearest named color is included. Transparent
// pixels are reported as black with alpha 0.
//
// Returns an error if (x, y) lies outside the image bounds.
func SampleColor(img image.Image, x, y int, namer Namer) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := img.At(x, y)
	r8, g8, b8, _ := pixelRGB(c)
	_, _, _, a := c.RGBA()

	rgb := colorspace.RGB{R: int(r8), G: int(g8), B: int(b8)}
	hsl, err := colorspace.RGBToHSL(rgb.R, rgb.G, rgb.B)
	if err != nil {
		return nil, err
	}

	result := &ColorResult{
		Hex:  "#" + rgb.Hex(),
		RGB:  rgb,
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: uint8(a >> 8)},
		HSL:  hsl,
	}

	if namer != nil {
		name, err := namer.Classify(result.Hex)
		if err != nil {
			return nil, fmt.Errorf("failed to name color %s: %w", result.Hex, err)
		}
		result.Name = name
	}

	return result, nil
}

// HexCount is one distinct color and how often it occurs.
type HexCount struct {
	Hex        string  `json:"hex"`        // "RRGGBB", uppercase
	Count      int     `json:"count"`      // Number of pixels
	Percentage float64 `json:"percentage"` // Share of counted pixels, 0-100
}

// HexColorsResult lists the colors of an image, most frequent first.
type HexColorsResult struct {
	Colors      []HexCount `json:"colors"`
	TotalPixels int        `json:"total_pixels"` // Pixels counted (transparent ones excluded)
}

// roundChannel snaps a component onto the 32-step palette used by
// HexColors: int((c+15)/32)*32, with 256 pulled back to 240.
func roundChannel(c uint8) uint8 {
	v := (int(c) + 15) / 32 * 32
	if v >= 256 {
		v = 240
	}
	return uint8(v)
}

// HexColors counts the colors used in img.
//
// Parameters:
//   - limit: maximum number of colors returned; <= 0 returns all.
//   - round: snap each component with roundChannel before counting, which
//     groups similar colors (at most 9 levels per channel).
//
// Colors are sorted by count descending, ties by hex ascending. Fully
// transparent pixels are skipped.
func HexColors(img image.Image, limit int, round bool) *HexColorsResult {
	bounds := img.Bounds()
	counts := make(map[string]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, ok := pixelRGB(img.At(x, y))
			if !ok {
				continue
			}
			if round {
				r, g, b = roundChannel(r), roundChannel(g), roundChannel(b)
			}
			counts[fmt.Sprintf("%02X%02X%02X", r, g, b)]++
			total++
		}
	}

	colors := make([]HexCount, 0, len(counts))
	for hex, n := range counts {
		colors = append(colors, HexCount{
			Hex:        hex,
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].Hex < colors[j].Hex
	})

	if limit > 0 && len(colors) > limit {
		colors = colors[:limit]
	}

	return &HexColorsResult{Colors: colors, TotalPixels: total}
}

// DefaultBaseColorLimit is the number of colors BaseColors inspects when
// called with limit <= 0.
const DefaultBaseColorLimit = 10

// BaseColor is a frequent image color together with its catalog name.
type BaseColor struct {
	Hex        string             `json:"hex"` // Rounded image color
	Percentage float64            `json:"percentage"`
	Color      catalog.NamedColor `json:"color"`
}

// BaseColors names the most used colors of img.
//
// The limit most frequent rounded colors (see HexColors) are classified with
// namer; colors the namer cannot match are dropped. Several image colors may
// share the same named color.
func BaseColors(img image.Image, namer Namer, limit int) ([]BaseColor, error) {
	if limit <= 0 {
		limit = DefaultBaseColorLimit
	}

	hexs := HexColors(img, limit, true)
	out := make([]BaseColor, 0, len(hexs.Colors))

	for _, hc := range hexs.Colors {
		named, err := namer.Classify(hc.Hex)
		if err != nil {
			return nil, fmt.Errorf("failed to name color %s: %w", hc.Hex, err)
		}
		if named == nil {
			continue
		}
		out = append(out, BaseColor{
			Hex:        hc.Hex,
			Percentage: hc.Percentage,
			Color:      *named,
		})
	}

	return out, nil
}

// BlackWhite returns the rounded percentage (0-100) of pixels whose red,
// green and blue components are equal. An empty image scores 0.
func BlackWhite(img image.Image) int {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	gray := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := pixelRGB(img.At(x, y))
			if r == g && r == b {
				gray++
			}
		}
	}

	return int(math.Round(float64(gray) / float64(total) * 100))
}
