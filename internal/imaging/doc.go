// Package imaging samples, names and edits raster images.
//
// It covers three areas: reading colors out of an image (SampleColor,
// HexColors, BaseColors, BlackWhite), editing a working copy of an image
// (Editor and its Operation pipeline) and loading or saving files through a
// shared ImageCache.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Color Representation
//
// Colors are reported in several forms:
//   - Hex: "#RRGGBB" for sampled pixels, "RRGGBB" in palettes (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// Components are always straight (not alpha-premultiplied). Fully
// transparent pixels carry no color and are left out of palettes.
//
// Naming goes through the Namer interface, which *catalog.Catalog
// implements.
//
// # Editing
//
// Filters are looked up by name (see FilterNames and ApplyFilter). An Editor
// chains filters with crop, resize, rotate, flip and colorize steps and
// saves the result in the format implied by the output extension. Each
// step produces a new image; the source image is never modified.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Editor is not; use one per
// request.
package imaging
