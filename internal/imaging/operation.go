package imaging

import (
	"fmt"
)

// Operation is one step of an edit pipeline, as decoded from JSON.
//
// Op selects the step; the other fields are read only by the steps that
// need them:
//
//	filter names (see ApplyFilter)  Level, DefaultLevel when omitted
//	"colorize"                      R, G, B, Alpha
//	"crop"                          X, Y, Width, Height
//	"resize"                        Width, Height, Ratio
//	"rotate"                        Degrees, Background, Alpha
//	"flip"                          Mode: "horizontal", "vertical" or "both"
type Operation struct {
	Op         string  `json:"op"`
	Level      *int    `json:"level,omitempty"`
	R          int     `json:"r,omitempty"`
	G          int     `json:"g,omitempty"`
	B          int     `json:"b,omitempty"`
	Alpha      int     `json:"alpha,omitempty"`
	X          int     `json:"x,omitempty"`
	Y          int     `json:"y,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Ratio      bool    `json:"ratio,omitempty"`
	Degrees    float64 `json:"degrees,omitempty"`
	Background string  `json:"background,omitempty"`
	Mode       string  `json:"mode,omitempty"`
}

var flipModes = map[string]FlipMode{
	"":           FlipHorizontal,
	"horizontal": FlipHorizontal,
	"vertical":   FlipVertical,
	"both":       FlipBoth,
}

// Apply runs a single operation.
func (e *Editor) Apply(op Operation) error {
	switch op.Op {
	case "colorize":
		return e.Colorize(op.R, op.G, op.B, op.Alpha)
	case "crop":
		return e.Crop(op.X, op.Y, op.Width, op.Height)
	case "resize":
		return e.Resize(op.Width, op.Height, op.Ratio)
	case "rotate":
		bg := op.Background
		if bg == "" {
			bg = "#FFFFFF"
		}
		return e.Rotate(op.Degrees, bg, op.Alpha)
	case "flip":
		mode, ok := flipModes[op.Mode]
		if !ok {
			return fmt.Errorf("%w: unknown flip mode %q", ErrInvalidArgument, op.Mode)
		}
		return e.Flip(mode)
	default:
		level := DefaultLevel(op.Op)
		if op.Level != nil {
			level = *op.Level
		}
		return e.Filter(op.Op, level)
	}
}

// ApplyAll runs ops in order and stops at the first failure. The error names
// the index and op of the failing step; earlier steps stay applied.
func (e *Editor) ApplyAll(ops []Operation) error {
	for i, op := range ops {
		if err := e.Apply(op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}
