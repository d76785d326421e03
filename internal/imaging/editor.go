package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-color-mcp/internal/colorspace"
)

// ErrUnsupportedFormat is returned by Save for formats without an encoder.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// FlipMode selects the axis for Editor.Flip.
type FlipMode int

// Flip modes.
const (
	FlipHorizontal FlipMode = 1
	FlipVertical   FlipMode = 2
	FlipBoth       FlipMode = 3
)

// DefaultQuality is the Save quality used by callers that do not choose one.
const DefaultQuality = 90

// Editor applies a sequence of edits to a working copy of an image.
//
// The source image is never modified. Reset discards all edits, and a
// successful Save resets the editor as well, so every save starts again from
// the source.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	source image.Image
	img    image.Image
	path   string
}

// NewEditor starts editing img. path, if non-empty, is the default Save
// destination.
func NewEditor(img image.Image, path string) *Editor {
	return &Editor{source: img, img: img, path: path}
}

// OpenEditor loads path through cache and starts editing it.
func OpenEditor(cache *ImageCache, path string) (*Editor, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return NewEditor(img, path), nil
}

// Image returns the current working image.
func (e *Editor) Image() image.Image {
	return e.img
}

// Reset discards all edits.
func (e *Editor) Reset() {
	e.img = e.source
}

// Filter applies a named filter; see ApplyFilter for names and levels.
func (e *Editor) Filter(name string, level int) error {
	out, err := ApplyFilter(e.img, name, level)
	if err != nil {
		return err
	}
	e.img = out
	return nil
}

// Negate inverts all colors.
func (e *Editor) Negate() error { return e.Filter("negate", 0) }

// Grayscale removes all color.
func (e *Editor) Grayscale() error { return e.Filter("grayscale", 0) }

// EdgeDetect highlights edges.
func (e *Editor) EdgeDetect() error { return e.Filter("edge_detect", 0) }

// Emboss applies an emboss effect.
func (e *Editor) Emboss() error { return e.Filter("emboss", 0) }

// GaussianBlur blurs with a small gaussian kernel.
func (e *Editor) GaussianBlur() error { return e.Filter("gaussian_blur", 0) }

// SelectiveBlur blurs while keeping edges (median filter).
func (e *Editor) SelectiveBlur() error { return e.Filter("selective_blur", 0) }

// MeanRemoval sharpens, giving a sketchy look.
func (e *Editor) MeanRemoval() error { return e.Filter("mean_removal", 0) }

// Contrast changes contrast by level (-100 to 100). Positive levels lower
// contrast, negative levels raise it.
func (e *Editor) Contrast(level int) error { return e.Filter("contrast", level) }

// Brightness changes brightness by level (-255 to 255).
func (e *Editor) Brightness(level int) error { return e.Filter("brightness", level) }

// Smooth softens the image; higher levels (0-100) smooth more.
func (e *Editor) Smooth(level int) error { return e.Filter("smooth", level) }

// Pixelate replaces blockSize x blockSize cells with their average color.
func (e *Editor) Pixelate(blockSize int) error { return e.Filter("pixelate", blockSize) }

// Colorize shifts all pixels towards (r, g, b); see Colorize.
func (e *Editor) Colorize(r, g, b, alpha int) error {
	out, err := Colorize(e.img, r, g, b, alpha)
	if err != nil {
		return err
	}
	e.img = out
	return nil
}

// Crop keeps the width x height rectangle whose top-left corner is (x, y).
//
// The rectangle must lie inside the current image.
func (e *Editor) Crop(x, y, width, height int) error {
	bounds := e.img.Bounds()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: crop size must be positive, got %dx%d", ErrInvalidArgument, width, height)
	}

	rect := image.Rect(x, y, x+width, y+height)
	if !rect.In(bounds) {
		return fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			ErrInvalidArgument, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	e.img = imaging.Crop(e.img, rect)
	return nil
}

// Resize scales the image to width x height.
//
// If one of width or height is 0 it is derived from the other so the aspect
// ratio is kept. With keepRatio set and both sizes given, the image is first
// center-cropped to the target aspect ratio so nothing is stretched.
func (e *Editor) Resize(width, height int, keepRatio bool) error {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return fmt.Errorf("%w: resize needs a positive width or height, got %dx%d", ErrInvalidArgument, width, height)
	}

	if keepRatio && width > 0 && height > 0 {
		e.img = imaging.Fill(e.img, width, height, imaging.Center, imaging.Lanczos)
		return nil
	}
	e.img = imaging.Resize(e.img, width, height, imaging.Lanczos)
	return nil
}

// Rotate turns the image counter-clockwise by degrees. Uncovered corners are
// filled with bgHex at the given alpha (0 opaque to 127 fully transparent).
func (e *Editor) Rotate(degrees float64, bgHex string, alpha int) error {
	bg, err := colorspace.HexToRGB(bgHex)
	if err != nil {
		return err
	}
	if alpha < 0 || alpha > 127 {
		return fmt.Errorf("%w: rotate alpha must be between 0 and 127, got %d", ErrInvalidArgument, alpha)
	}

	fill := color.NRGBA{
		R: uint8(bg.R),
		G: uint8(bg.G),
		B: uint8(bg.B),
		A: uint8(255 - alpha*255/127),
	}
	e.img = imaging.Rotate(e.img, degrees, fill)
	return nil
}

// Flip mirrors the image.
func (e *Editor) Flip(mode FlipMode) error {
	switch mode {
	case FlipHorizontal:
		e.img = imaging.FlipH(e.img)
	case FlipVertical:
		e.img = imaging.FlipV(e.img)
	case FlipBoth:
		e.img = imaging.Rotate180(e.img)
	default:
		return fmt.Errorf("%w: flip mode must be between 1 and 3, got %d", ErrInvalidArgument, mode)
	}
	return nil
}

// Save encodes the working image to path and then resets the editor.
//
// An empty path saves over the file the editor was opened from. The format
// follows the extension: png, gif, bmp, tif/tiff, jpg/jpeg; any other
// extension is written as JPEG. webp has no encoder and fails with
// ErrUnsupportedFormat.
//
// quality (0-100) sets JPEG quality directly. For PNG it selects the zlib
// effort as min(9, (100-quality)/10), mapped onto the compression levels
// image/png offers.
func (e *Editor) Save(path string, quality int) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return fmt.Errorf("%w: no output path", ErrInvalidArgument)
	}
	if quality < 0 || quality > 100 {
		return fmt.Errorf("%w: quality must be between 0 and 100, got %d", ErrInvalidArgument, quality)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "webp" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		format = imaging.JPEG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	err = imaging.Encode(f, e.img, format,
		imaging.JPEGQuality(quality),
		imaging.PNGCompressionLevel(pngCompression(quality)))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	e.Reset()
	return nil
}

// pngCompression converts a 0-100 quality into a png.CompressionLevel.
func pngCompression(quality int) png.CompressionLevel {
	level := min(9, (100-quality)/10)
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// EncodedImage is an image returned inline as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
