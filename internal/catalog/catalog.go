package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ironsheep/image-color-mcp/internal/colorspace"
)

// ErrMalformedEntry is wrapped by every EntryError.
var ErrMalformedEntry = errors.New("malformed catalog entry")

// hslWeight multiplies the HSL part of the combined distance.
const hslWeight = 2

// EntryError reports the dataset row that stopped a catalog build.
type EntryError struct {
	Hex    string // Row hex as given in the dataset
	Shade  int    // Shade id of or referenced by the row, -1 for base rows
	Base   int    // Base id of or referenced by the row, -1 if not reached
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrMalformedEntry, e.Hex, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedEntry.
func (e *EntryError) Unwrap() error {
	return ErrMalformedEntry
}

// ShadeRef identifies the shade group of a NamedColor.
type ShadeRef struct {
	ID  int    `json:"id"`
	Hex string `json:"hex"`
}

// BaseRef identifies the base color family of a NamedColor.
type BaseRef struct {
	ID    int    `json:"id"`
	Hex   string `json:"hex"`
	Title string `json:"title"`
}

// NamedColor is one indexed catalog entry.
type NamedColor struct {
	Hex   string         `json:"hex"` // "RRGGBB", uppercase, no '#'
	RGB   colorspace.RGB `json:"rgb"`
	HSL   colorspace.HSL `json:"hsl"`
	Title string         `json:"title"`
	Shade ShadeRef       `json:"shade"`
	Base  BaseRef        `json:"base"`
}

// Catalog classifies arbitrary colors against a fixed table of named colors.
//
// The index is built once, either explicitly through Build or on the first
// Classify call, and is read-only afterwards. A Catalog is safe for
// concurrent use; concurrent first use builds the index exactly once.
//
// To pick up a changed dataset, construct a new Catalog.
type Catalog struct {
	data *Dataset

	once    sync.Once
	err     error
	entries []NamedColor
	index   map[string]int
}

// New creates a catalog over ds. A nil dataset yields an empty catalog.
// Nothing is computed until Build or Classify is called.
func New(ds *Dataset) *Catalog {
	return &Catalog{data: ds}
}

// NewDefault creates a catalog over the embedded reference dataset and
// builds it.
func NewDefault() (*Catalog, error) {
	ds, err := DefaultDataset()
	if err != nil {
		return nil, err
	}
	c := New(ds)
	if err := c.Build(); err != nil {
		return nil, err
	}
	return c, nil
}

// Build indexes the dataset. Calls after the first are no-ops that return
// the first call's result.
//
// A row with an invalid hex, a shade or base id used twice, or a color
// whose shade or base reference does not resolve fails the whole build with
// an *EntryError.
func (c *Catalog) Build() error {
	c.once.Do(func() {
		c.entries, c.index, c.err = buildIndex(c.data)
	})
	return c.err
}

func buildIndex(ds *Dataset) ([]NamedColor, map[string]int, error) {
	if ds == nil {
		return nil, map[string]int{}, nil
	}

	bases := make(map[int]BaseRow, len(ds.Bases))
	for _, b := range ds.Bases {
		if _, dup := bases[b.ID]; dup {
			return nil, nil, &EntryError{Hex: b.Hex, Shade: -1, Base: b.ID,
				Reason: fmt.Sprintf("base id %d is used more than once", b.ID)}
		}
		hex, err := colorspace.NormalizeHex(b.Hex)
		if err != nil {
			return nil, nil, &EntryError{Hex: b.Hex, Shade: -1, Base: b.ID, Reason: err.Error()}
		}
		b.Hex = hex
		bases[b.ID] = b
	}
	shades := make(map[int]ShadeRow, len(ds.Shades))
	for _, s := range ds.Shades {
		if _, dup := shades[s.ID]; dup {
			return nil, nil, &EntryError{Hex: s.Hex, Shade: s.ID, Base: s.Base,
				Reason: fmt.Sprintf("shade id %d is used more than once", s.ID)}
		}
		hex, err := colorspace.NormalizeHex(s.Hex)
		if err != nil {
			return nil, nil, &EntryError{Hex: s.Hex, Shade: s.ID, Base: s.Base, Reason: err.Error()}
		}
		s.Hex = hex
		shades[s.ID] = s
	}

	entries := make([]NamedColor, 0, len(ds.Colors))
	index := make(map[string]int, len(ds.Colors))

	for _, row := range ds.Colors {
		hex, err := colorspace.NormalizeHex(row.Hex)
		if err != nil {
			return nil, nil, &EntryError{Hex: row.Hex, Shade: row.Shade, Base: -1, Reason: err.Error()}
		}
		if _, dup := index[hex]; dup {
			continue
		}

		shade, ok := shades[row.Shade]
		if !ok {
			return nil, nil, &EntryError{Hex: row.Hex, Shade: row.Shade, Base: -1,
				Reason: fmt.Sprintf("shade %d does not exist", row.Shade)}
		}
		base, ok := bases[shade.Base]
		if !ok {
			return nil, nil, &EntryError{Hex: row.Hex, Shade: row.Shade, Base: shade.Base,
				Reason: fmt.Sprintf("shade %d references base %d which does not exist", shade.ID, shade.Base)}
		}

		rgb, err := colorspace.HexToRGB(hex)
		if err != nil {
			return nil, nil, &EntryError{Hex: row.Hex, Shade: row.Shade, Base: shade.Base, Reason: err.Error()}
		}
		hsl, err := colorspace.RGBToHSL(rgb.R, rgb.G, rgb.B)
		if err != nil {
			return nil, nil, &EntryError{Hex: row.Hex, Shade: row.Shade, Base: shade.Base, Reason: err.Error()}
		}

		index[hex] = len(entries)
		entries = append(entries, NamedColor{
			Hex:   hex,
			RGB:   rgb,
			HSL:   hsl,
			Title: row.Title,
			Shade: ShadeRef{ID: shade.ID, Hex: shade.Hex},
			Base:  BaseRef{ID: base.ID, Hex: base.Hex, Title: base.Title},
		})
	}

	return entries, index, nil
}

// Classify returns the catalog entry nearest to hex.
//
// The distance between two colors is
//
//	(r-r')² + (g-g')² + (b-b')² + 2 × ((h-h')² + (s-s')² + (l-l')²)
//
// Ties go to the entry that appears first in the dataset. The result is nil
// only when the catalog is empty.
//
// Returns an error wrapping colorspace.ErrInvalidFormat for a bad hex, or the
// build error if the index could not be built.
func (c *Catalog) Classify(hex string) (*NamedColor, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}

	rgb, err := colorspace.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	hsl, err := colorspace.RGBToHSL(rgb.R, rgb.G, rgb.B)
	if err != nil {
		return nil, err
	}

	best := -1
	var bestDist float64
	for i := range c.entries {
		d := distance(rgb, hsl, &c.entries[i])
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil, nil
	}

	match := c.entries[best]
	return &match, nil
}

// Lookup returns the entry whose hex equals hex exactly, or nil.
func (c *Catalog) Lookup(hex string) (*NamedColor, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	key, err := colorspace.NormalizeHex(hex)
	if err != nil {
		return nil, err
	}
	i, ok := c.index[key]
	if !ok {
		return nil, nil
	}
	match := c.entries[i]
	return &match, nil
}

// Entries returns a copy of all entries in dataset order.
func (c *Catalog) Entries() ([]NamedColor, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	out := make([]NamedColor, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

// Len returns the number of indexed entries, 0 if the build failed.
func (c *Catalog) Len() int {
	if err := c.Build(); err != nil {
		return 0
	}
	return len(c.entries)
}

func distance(rgb colorspace.RGB, hsl colorspace.HSL, e *NamedColor) float64 {
	dr := rgb.R - e.RGB.R
	dg := rgb.G - e.RGB.G
	db := rgb.B - e.RGB.B
	rgbDist := float64(dr*dr + dg*dg + db*db)

	dh := hsl.H - e.HSL.H
	ds := hsl.S - e.HSL.S
	dl := hsl.L - e.HSL.L
	hslDist := dh*dh + ds*ds + dl*dl

	return rgbDist + hslWeight*hslDist
}
