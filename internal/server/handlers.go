package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/image-color-mcp/internal/catalog"
	"github.com/ironsheep/image-color-mcp/internal/colorspace"
	"github.com/ironsheep/image-color-mcp/internal/imaging"
)

// Defaults applied when a tool argument is omitted.
const (
	defaultHexColorLimit = 20
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_name", "image_edit").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		if err != nil {
			log.Printf("tool %s failed after %s: %v", params.Name, time.Since(start), err)
		} else {
			log.Printf("tool %s completed in %s", params.Name, time.Since(start))
		}
	}
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	text, err := marshalJSON(result)
	if err != nil {
		log.Printf("tool %s: failed to encode result: %v", params.Name, err)
		return s.errorResponse(req.ID, -32603, "Internal error", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Color conversion
	case "color_hex_to_rgb":
		return s.handleColorHexToRGB(args)
	case "color_rgb_to_hsl":
		return s.handleColorRGBToHSL(args)
	case "color_hex_to_hsl":
		return s.handleColorHexToHSL(args)
	case "color_validate_hex":
		return s.handleColorValidateHex(args)
	case "color_validate_rgb":
		return s.handleColorValidateRGB(args)

	// Classification
	case "color_name":
		return s.handleColorName(args)

	// Image analysis
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_hex_colors":
		return s.handleImageHexColors(args)
	case "image_base_colors":
		return s.handleImageBaseColors(args)
	case "image_black_white":
		return s.handleImageBlackWhite(args)

	// Editing
	case "image_edit":
		return s.handleImageEdit(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// marshalJSON converts a value to a pretty-printed JSON string.
func marshalJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// === Color Conversion Handlers ===

type hexArgs struct {
	Hex string `json:"hex"`
}

type rgbArgs struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (s *Server) handleColorHexToRGB(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return colorspace.HexToRGB(a.Hex)
}

func (s *Server) handleColorRGBToHSL(args json.RawMessage) (interface{}, error) {
	var a rgbArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return colorspace.RGBToHSL(a.R, a.G, a.B)
}

func (s *Server) handleColorHexToHSL(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return colorspace.HexToHSL(a.Hex)
}

// validationResult reports whether an input is a valid color. Hex is the
// normalized form and is only set for valid hex input.
type validationResult struct {
	Valid bool   `json:"valid"`
	Hex   string `json:"hex,omitempty"`
}

func (s *Server) handleColorValidateHex(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	norm, err := colorspace.NormalizeHex(a.Hex)
	if err != nil {
		return validationResult{Valid: false}, nil
	}
	return validationResult{Valid: true, Hex: norm}, nil
}

func (s *Server) handleColorValidateRGB(args json.RawMessage) (interface{}, error) {
	var a rgbArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return validationResult{Valid: colorspace.ValidateRGB(a.R, a.G, a.B)}, nil
}

// === Classification Handlers ===

// colorNameResult carries the nearest catalog color; Color is null when the
// catalog is empty.
type colorNameResult struct {
	Query string              `json:"query"`
	Color *catalog.NamedColor `json:"color"`
}

func (s *Server) handleColorName(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	named, err := s.catalog.Classify(a.Hex)
	if err != nil {
		return nil, err
	}
	return colorNameResult{Query: a.Hex, Color: named}, nil
}

// === Image Analysis Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y, s.catalog)
}

type imageHexColorsArgs struct {
	Path  string `json:"path"`
	Limit int    `json:"limit"`
	Round bool   `json:"round"`
}

func (s *Server) handleImageHexColors(args json.RawMessage) (interface{}, error) {
	var a imageHexColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Limit == 0 {
		a.Limit = defaultHexColorLimit
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.HexColors(img, a.Limit, a.Round), nil
}

type imageBaseColorsArgs struct {
	Path  string `json:"path"`
	Limit int    `json:"limit"`
}

type baseColorsResult struct {
	Colors []imaging.BaseColor `json:"colors"`
}

func (s *Server) handleImageBaseColors(args json.RawMessage) (interface{}, error) {
	var a imageBaseColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	colors, err := imaging.BaseColors(img, s.catalog, a.Limit)
	if err != nil {
		return nil, err
	}
	return baseColorsResult{Colors: colors}, nil
}

type blackWhiteResult struct {
	Percent int `json:"percent"`
}

func (s *Server) handleImageBlackWhite(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return blackWhiteResult{Percent: imaging.BlackWhite(img)}, nil
}

// === Editing Handlers ===

type imageEditArgs struct {
	Path       string              `json:"path"`
	Operations []imaging.Operation `json:"operations"`
	Output     string              `json:"output"`
	Quality    *int                `json:"quality"`
}

// editResult reports the edited size and either where it was written or
// the inline PNG when no output path was given.
type editResult struct {
	Width  int                   `json:"width"`
	Height int                   `json:"height"`
	Output string                `json:"output,omitempty"`
	Image  *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageEdit(args json.RawMessage) (interface{}, error) {
	var a imageEditArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	quality := imaging.DefaultQuality
	if a.Quality != nil {
		quality = *a.Quality
	}

	editor, err := imaging.OpenEditor(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	if err := editor.ApplyAll(a.Operations); err != nil {
		return nil, err
	}

	bounds := editor.Image().Bounds()
	result := editResult{Width: bounds.Dx(), Height: bounds.Dy()}

	if a.Output == "" {
		enc, err := imaging.EncodePNG(editor.Image())
		if err != nil {
			return nil, err
		}
		result.Image = enc
		return result, nil
	}

	if err := editor.Save(a.Output, quality); err != nil {
		return nil, err
	}
	// The file on disk changed; drop any stale decoded copy.
	s.cache.Evict(a.Output)
	result.Output = a.Output
	return result, nil
}
