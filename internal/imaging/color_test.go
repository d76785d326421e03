package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/image-color-mcp/internal/catalog"
	"github.com/ironsheep/image-color-mcp/internal/colorspace"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault failed: %v", err)
	}
	return cat
}

// fakeNamer answers from a fixed table and fails for unknown hex values.
type fakeNamer map[string]*catalog.NamedColor

func (f fakeNamer) Classify(hex string) (*catalog.NamedColor, error) {
	named, ok := f[hex]
	if !ok {
		return nil, errors.New("no such color")
	}
	return named, nil
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50, nil)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	want := &ColorResult{
		Hex:  "#FF8040",
		RGB:  colorspace.RGB{R: 255, G: 128, B: 64},
		RGBA: RGBAColor{R: 255, G: 128, B: 64, A: 255},
		HSL:  colorspace.HSL{H: 20.1, S: 100, L: 62.55},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("SampleColor mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleColor_WithNamer(t *testing.T) {
	cat := defaultCatalog(t)

	tests := []struct {
		name  string
		color color.RGBA
		title string
	}{
		{"exact red", color.RGBA{255, 0, 0, 255}, "Red"},
		{"exact gray", color.RGBA{128, 128, 128, 255}, "Gray"},
		{"near coral", color.RGBA{255, 128, 64, 255}, "Coral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)

			result, err := SampleColor(img, 5, 5, cat)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Name == nil {
				t.Fatal("expected a named color")
			}
			if result.Name.Title != tt.title {
				t.Errorf("Name.Title: got %s, want %s", result.Name.Title, tt.title)
			}
		})
	}
}

func TestSampleColor_NamerError(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{1, 2, 3, 255})

	if _, err := SampleColor(img, 0, 0, fakeNamer{}); err == nil {
		t.Error("expected namer error to be returned")
	}
}

func TestSampleColor_Transparency(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.NRGBA{255, 0, 0, 128})

	transparent, err := SampleColor(img, 0, 0, nil)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if transparent.Hex != "#000000" || transparent.RGBA.A != 0 {
		t.Errorf("transparent pixel: got %s alpha %d, want #000000 alpha 0", transparent.Hex, transparent.RGBA.A)
	}

	// Premultiplied storage must not darken the reported color
	half, err := SampleColor(img, 1, 0, nil)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if half.Hex != "#FF0000" {
		t.Errorf("Hex: got %s, want #FF0000", half.Hex)
	}
	if half.RGBA.A != 128 {
		t.Errorf("alpha: got %d, want 128", half.RGBA.A)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y, nil); err == nil {
				t.Errorf("SampleColor(%d, %d) should fail", tt.x, tt.y)
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		x, y int
		hex  string
	}{
		{0, 0, "#FF0000"},
		{99, 0, "#00FF00"},
		{0, 99, "#0000FF"},
		{99, 99, "#FFFFFF"},
	}

	for _, tt := range tests {
		result, err := SampleColor(img, tt.x, tt.y, nil)
		if err != nil {
			t.Errorf("SampleColor(%d, %d) failed: %v", tt.x, tt.y, err)
			continue
		}
		if result.Hex != tt.hex {
			t.Errorf("SampleColor(%d, %d): got %s, want %s", tt.x, tt.y, result.Hex, tt.hex)
		}
	}
}

func TestRoundChannel(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{16, 0},
		{17, 32},
		{100, 96},
		{128, 128},
		{240, 224},
		{241, 240},
		{255, 240},
	}

	for _, tt := range tests {
		if got := roundChannel(tt.in); got != tt.want {
			t.Errorf("roundChannel(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHexColors(t *testing.T) {
	img := createPatternImage(100, 100)

	result := HexColors(img, 0, false)

	want := &HexColorsResult{
		Colors: []HexCount{
			{Hex: "0000FF", Count: 2500, Percentage: 25},
			{Hex: "00FF00", Count: 2500, Percentage: 25},
			{Hex: "FF0000", Count: 2500, Percentage: 25},
			{Hex: "FFFFFF", Count: 2500, Percentage: 25},
		},
		TotalPixels: 10000,
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("HexColors mismatch (-want +got):\n%s", diff)
	}
}

func TestHexColors_Rounded(t *testing.T) {
	img := createPatternImage(100, 100)

	result := HexColors(img, 0, true)

	var got []string
	for _, c := range result.Colors {
		got = append(got, c.Hex)
	}
	want := []string{"0000F0", "00F000", "F00000", "F0F0F0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rounded hex mismatch (-want +got):\n%s", diff)
	}
}

func TestHexColors_RoundingMergesNearColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, color.RGBA{250, 10, 10, 255})
	img.Set(1, 0, color.RGBA{245, 5, 0, 255})
	img.Set(2, 0, color.RGBA{255, 0, 16, 255})
	img.Set(3, 0, color.RGBA{0, 0, 0, 255})

	result := HexColors(img, 0, true)

	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d: %+v", len(result.Colors), result.Colors)
	}
	if result.Colors[0].Hex != "F00000" || result.Colors[0].Count != 3 {
		t.Errorf("first color: got %+v, want F00000 x3", result.Colors[0])
	}
	if result.Colors[0].Percentage != 75 {
		t.Errorf("first color percentage: got %f, want 75", result.Colors[0].Percentage)
	}
}

func TestHexColors_SortedByCount(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 1))
	for x := 0; x < 10; x++ {
		switch {
		case x < 6:
			img.Set(x, 0, color.RGBA{0, 0, 255, 255})
		case x < 9:
			img.Set(x, 0, color.RGBA{255, 0, 0, 255})
		default:
			img.Set(x, 0, color.RGBA{0, 255, 0, 255})
		}
	}

	result := HexColors(img, 0, false)

	wantOrder := []string{"0000FF", "FF0000", "00FF00"}
	for i, hex := range wantOrder {
		if result.Colors[i].Hex != hex {
			t.Errorf("position %d: got %s, want %s", i, result.Colors[i].Hex, hex)
		}
	}
}

func TestHexColors_Limit(t *testing.T) {
	img := createPatternImage(100, 100)

	result := HexColors(img, 2, false)

	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(result.Colors))
	}
	if result.TotalPixels != 10000 {
		t.Errorf("TotalPixels: got %d, want 10000", result.TotalPixels)
	}
}

func TestHexColors_SkipsTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}

	result := HexColors(img, 0, false)

	if result.TotalPixels != 8 {
		t.Errorf("TotalPixels: got %d, want 8", result.TotalPixels)
	}
	if len(result.Colors) != 1 || result.Colors[0].Percentage != 100 {
		t.Errorf("expected a single color at 100%%, got %+v", result.Colors)
	}
}

func TestBaseColors(t *testing.T) {
	cat := defaultCatalog(t)
	img := createPatternImage(100, 100)

	colors, err := BaseColors(img, cat, 0)
	if err != nil {
		t.Fatalf("BaseColors failed: %v", err)
	}

	want := map[string]string{
		"0000F0": "Blue",
		"00F000": "Lime",
		"F00000": "Red",
		"F0F0F0": "White Smoke",
	}
	if len(colors) != len(want) {
		t.Fatalf("expected %d colors, got %d", len(want), len(colors))
	}
	for _, c := range colors {
		if want[c.Hex] != c.Color.Title {
			t.Errorf("%s: got %s, want %s", c.Hex, c.Color.Title, want[c.Hex])
		}
		if c.Percentage != 25 {
			t.Errorf("%s percentage: got %f, want 25", c.Hex, c.Percentage)
		}
	}
}

func TestBaseColors_Limit(t *testing.T) {
	cat := defaultCatalog(t)
	img := createPatternImage(100, 100)

	colors, err := BaseColors(img, cat, 1)
	if err != nil {
		t.Fatalf("BaseColors failed: %v", err)
	}
	if len(colors) != 1 {
		t.Errorf("expected 1 color, got %d", len(colors))
	}
}

func TestBaseColors_EmptyNamer(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})
	namer := fakeNamer{"F00000": nil}

	colors, err := BaseColors(img, namer, 0)
	if err != nil {
		t.Fatalf("BaseColors failed: %v", err)
	}
	if len(colors) != 0 {
		t.Errorf("expected no colors, got %+v", colors)
	}
}

func TestBaseColors_NamerError(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	if _, err := BaseColors(img, fakeNamer{}, 0); err == nil {
		t.Error("expected namer error to be returned")
	}
}

func TestBlackWhite(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", createInMemoryImage(10, 10, color.RGBA{90, 90, 90, 255}), 100},
		{"black", createInMemoryImage(10, 10, color.RGBA{0, 0, 0, 255}), 100},
		{"color", createInMemoryImage(10, 10, color.RGBA{90, 91, 90, 255}), 0},
		{"pattern", createPatternImage(100, 100), 25},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 0)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlackWhite(tt.img); got != tt.want {
				t.Errorf("BlackWhite: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBlackWhite_Rounding(t *testing.T) {
	// 1 gray pixel out of 3 is 33.33%
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{50, 50, 50, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(2, 0, color.RGBA{0, 255, 0, 255})

	if got := BlackWhite(img); got != 33 {
		t.Errorf("BlackWhite: got %d, want 33", got)
	}
}
