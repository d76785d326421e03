package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed data/colors.json
var defaultData []byte

// ColorRow is one named reference color.
type ColorRow struct {
	Hex   string `json:"hex"`   // "RRGGBB", optional '#', any case
	Shade int    `json:"shade"` // ShadeRow.ID this color belongs to
	Title string `json:"title"` // Human readable name, e.g. "Tomato"
}

// ShadeRow groups related colors under a representative hex.
type ShadeRow struct {
	ID   int    `json:"id"`
	Hex  string `json:"hex"`
	Base int    `json:"base"` // BaseRow.ID of the owning family
}

// BaseRow is the coarsest color family, e.g. "Red" or "Blue".
type BaseRow struct {
	ID    int    `json:"id"`
	Hex   string `json:"hex"`
	Title string `json:"title"`
}

// Dataset holds the three relational tables a Catalog is built from:
// colors reference shades, shades reference base families.
//
// Slices preserve insertion order, which is the iteration order used to
// break distance ties during classification.
type Dataset struct {
	Colors []ColorRow `json:"colors"`
	Shades []ShadeRow `json:"shades"`
	Bases  []BaseRow  `json:"bases"`
}

// DefaultDataset decodes the embedded reference table of CSS/X11 named
// colors.
func DefaultDataset() (*Dataset, error) {
	return LoadDataset(bytes.NewReader(defaultData))
}

// LoadDataset decodes a JSON dataset.
//
// Only the JSON structure is checked here; references between tables are
// resolved when the Catalog is built.
func LoadDataset(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode color dataset: %w", err)
	}
	return &ds, nil
}

// LoadDatasetFile reads a JSON dataset from disk.
func LoadDatasetFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open color dataset: %w", err)
	}
	defer f.Close()

	return LoadDataset(f)
}
