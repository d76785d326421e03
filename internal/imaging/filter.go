package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

var (
	// ErrUnknownFilter is returned by ApplyFilter for an unregistered name.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrInvalidArgument is returned when an editing parameter is out of range.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Default levels used when an operation omits its level.
const (
	DefaultContrastLevel   = 50
	DefaultBrightnessLevel = 50
	DefaultSmoothLevel     = 50
	DefaultPixelateBlock   = 5
)

// filterFunc applies one named filter at the given level.
type filterFunc func(img image.Image, level int) (image.Image, error)

type filterSpec struct {
	fn           filterFunc
	defaultLevel int
}

var filters = map[string]filterSpec{
	"negate": {fn: func(img image.Image, _ int) (image.Image, error) {
		return effect.Invert(img), nil
	}},
	"grayscale": {fn: func(img image.Image, _ int) (image.Image, error) {
		return effect.Grayscale(img), nil
	}},
	"edge_detect": {fn: func(img image.Image, _ int) (image.Image, error) {
		return effect.EdgeDetection(img, 1), nil
	}},
	"emboss": {fn: func(img image.Image, _ int) (image.Image, error) {
		return effect.Emboss(img), nil
	}},
	"gaussian_blur": {fn: func(img image.Image, _ int) (image.Image, error) {
		return blur.Gaussian(img, 1), nil
	}},
	"selective_blur": {fn: func(img image.Image, _ int) (image.Image, error) {
		return effect.Median(img, 1), nil
	}},
	"mean_removal": {fn: func(img image.Image, _ int) (image.Image, error) {
		return effect.Sharpen(img), nil
	}},
	"contrast":   {fn: contrast, defaultLevel: DefaultContrastLevel},
	"brightness": {fn: brightness, defaultLevel: DefaultBrightnessLevel},
	"smooth":     {fn: smooth, defaultLevel: DefaultSmoothLevel},
	"pixelate":   {fn: pixelate, defaultLevel: DefaultPixelateBlock},
}

// DefaultLevel returns the level a filter uses when none is given, 0 for
// filters that ignore their level or are not registered.
func DefaultLevel(name string) int {
	return filters[name].defaultLevel
}

// FilterNames returns the registered filter names in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyFilter runs the named filter over img and returns a new image.
//
// Filters and their level parameter:
//   - negate, grayscale, edge_detect, emboss, gaussian_blur,
//     selective_blur, mean_removal: level ignored
//   - contrast: -100 to 100, positive lowers contrast, 0 leaves the image as is
//   - brightness: -255 to 255, 0 leaves the image as is
//   - smooth: 0 to 100, higher is smoother
//   - pixelate: block size in pixels, >= 1
//
// level is used as given; see DefaultLevel for the level to use when the
// caller has none.
func ApplyFilter(img image.Image, name string, level int) (image.Image, error) {
	spec, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	return spec.fn(img, level)
}

// contrast scales each channel's distance from mid-gray by
// ((100-level)/100)², so level 100 flattens the image to gray and -100
// stretches it four-fold.
func contrast(img image.Image, level int) (image.Image, error) {
	if level < -100 || level > 100 {
		return nil, fmt.Errorf("%w: contrast level must be between -100 and 100, got %d", ErrInvalidArgument, level)
	}
	if level == 0 {
		return imaging.Clone(img), nil
	}
	factor := float64(100-level) / 100
	return adjust.Contrast(img, factor*factor-1), nil
}

func brightness(img image.Image, level int) (image.Image, error) {
	if level < -255 || level > 255 {
		return nil, fmt.Errorf("%w: brightness level must be between -255 and 255, got %d", ErrInvalidArgument, level)
	}
	if level == 0 {
		return imaging.Clone(img), nil
	}
	return adjust.Brightness(img, float64(level)/255), nil
}

// smooth maps level 0-100 onto a box blur radius of 1-5.
func smooth(img image.Image, level int) (image.Image, error) {
	if level < 0 || level > 100 {
		return nil, fmt.Errorf("%w: smooth level must be between 0 and 100, got %d", ErrInvalidArgument, level)
	}
	return blur.Box(img, float64(1+level/25)), nil
}

// pixelate averages blockSize x blockSize cells and scales them back up.
func pixelate(img image.Image, blockSize int) (image.Image, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: pixelate block size must be at least 1, got %d", ErrInvalidArgument, blockSize)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 || blockSize == 1 {
		return imaging.Clone(img), nil
	}

	small := imaging.Resize(img, max(1, w/blockSize), max(1, h/blockSize), imaging.Box)
	return imaging.Resize(small, w, h, imaging.NearestNeighbor), nil
}

// Colorize shifts every pixel towards (r, g, b).
//
// r, g and b are 0-255 offsets added to each channel; alpha (0-127) weakens
// the shift, 0 applying it fully and 127 leaving the image unchanged.
func Colorize(img image.Image, r, g, b, alpha int) (image.Image, error) {
	if !validByte(r) || !validByte(g) || !validByte(b) {
		return nil, fmt.Errorf("%w: colorize components must be between 0 and 255, got %d, %d, %d",
			ErrInvalidArgument, r, g, b)
	}
	if alpha < 0 || alpha > 127 {
		return nil, fmt.Errorf("%w: colorize alpha must be between 0 and 127, got %d", ErrInvalidArgument, alpha)
	}

	strength := 1 - float64(alpha)/127
	dr := int(float64(r) * strength)
	dg := int(float64(g) * strength)
	db := int(float64(b) * strength)

	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: clampByte(int(c.R)+dr, c.A),
			G: clampByte(int(c.G)+dg, c.A),
			B: clampByte(int(c.B)+db, c.A),
			A: c.A,
		}
	}), nil
}

func validByte(v int) bool {
	return v >= 0 && v <= 255
}

// clampByte limits v to 0..hi. Premultiplied channels never exceed alpha.
func clampByte(v int, hi uint8) uint8 {
	if v < 0 {
		return 0
	}
	if v > int(hi) {
		return hi
	}
	return uint8(v)
}
