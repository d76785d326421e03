package server

import (
	"github.com/ironsheep/image-color-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func hexSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"hex": stringProp("Six-digit hex color, leading # optional (e.g., \"#FF6347\" or \"ff6347\")"),
		},
		"required": []string{"hex"},
	}
}

func rgbSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"r": intProp("Red component (0-255)"),
			"g": intProp("Green component (0-255)"),
			"b": intProp("Blue component (0-255)"),
		},
		"required": []string{"r", "g", "b"},
	}
}

func pathSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": stringProp("Absolute path to the image file"),
		},
		"required": []string{"path"},
	}
}

// operationOps lists the values accepted in an image_edit operation's "op".
func operationOps() []string {
	ops := imaging.FilterNames()
	return append(ops, "colorize", "crop", "resize", "rotate", "flip")
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Color Conversion
		{
			Name:        "color_hex_to_rgb",
			Description: "Convert a hex color to its red, green and blue components.",
			InputSchema: hexSchema(),
		},
		{
			Name:        "color_rgb_to_hsl",
			Description: "Convert red, green and blue components to hue (0-360), saturation (0-100) and lightness (0-100), rounded to two decimals.",
			InputSchema: rgbSchema(),
		},
		{
			Name:        "color_hex_to_hsl",
			Description: "Convert a hex color to hue (0-360), saturation (0-100) and lightness (0-100).",
			InputSchema: hexSchema(),
		},
		{
			Name:        "color_validate_hex",
			Description: "Check whether a string is a six-digit hex color. Valid input is returned normalized (uppercase, no #).",
			InputSchema: hexSchema(),
		},
		{
			Name:        "color_validate_rgb",
			Description: "Check whether red, green and blue components are all within 0-255.",
			InputSchema: rgbSchema(),
		},

		// Classification
		{
			Name:        "color_name",
			Description: "Find the nearest named color for a hex color, with its shade group and base color family (e.g., \"FE6348\" is Tomato, shade Coral, family Orange).",
			InputSchema: hexSchema(),
		},

		// Image Analysis
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, file size and the percentage of black, white and gray pixels.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel as hex, RGB, RGBA and HSL, together with its nearest named color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
					"x":    intProp("X coordinate (0-based, from left)"),
					"y":    intProp("Y coordinate (0-based, from top)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_hex_colors",
			Description: "Count the colors used in an image, most frequent first. With round set, similar colors are grouped onto a 32-step palette.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return; negative returns all. Default 20",
						"default":     defaultHexColorLimit,
					},
					"round": map[string]interface{}{
						"type":        "boolean",
						"description": "Group similar colors before counting. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_base_colors",
			Description: "Name the most used colors of an image. Each frequent color is matched to its nearest named color, shade and base family.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Number of frequent colors to name. Default 10",
						"default":     imaging.DefaultBaseColorLimit,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_black_white",
			Description: "Return the rounded percentage of pixels that are black, white or gray (red, green and blue equal).",
			InputSchema: pathSchema(),
		},

		// Editing
		{
			Name: "image_edit",
			Description: "Apply a sequence of edits to an image. Writes the result to output (format from extension, jpg by default; " +
				"webp cannot be written) or returns it as base64 PNG when output is omitted. The source file is never modified " +
				"unless output names it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
					"operations": map[string]interface{}{
						"type":        "array",
						"description": "Edits applied in order",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"op": map[string]interface{}{
									"type": "string",
									"enum": operationOps(),
								},
								"level":      intProp("Filter level: contrast -100..100 (positive softens), brightness -255..255, smooth 0..100, pixelate block size. Omit for the filter default"),
								"r":          intProp("colorize: red offset 0-255"),
								"g":          intProp("colorize: green offset 0-255"),
								"b":          intProp("colorize: blue offset 0-255"),
								"alpha":      intProp("colorize/rotate: 0 opaque to 127 transparent"),
								"x":          intProp("crop: left edge"),
								"y":          intProp("crop: top edge"),
								"width":      intProp("crop/resize: width in pixels"),
								"height":     intProp("crop/resize: height in pixels"),
								"ratio":      map[string]interface{}{"type": "boolean", "description": "resize: crop to the target aspect instead of stretching"},
								"degrees":    map[string]interface{}{"type": "number", "description": "rotate: angle, counter-clockwise"},
								"background": stringProp("rotate: fill color for uncovered areas. Default #FFFFFF"),
								"mode": map[string]interface{}{
									"type": "string",
									"enum": []string{"horizontal", "vertical", "both"},
								},
							},
							"required": []string{"op"},
						},
					},
					"output": stringProp("Absolute output path. Omit to get the result inline"),
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "Output quality 0-100 (JPEG quality, PNG compression effort). Default 90",
						"default":     imaging.DefaultQuality,
					},
				},
				"required": []string{"path", "operations"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
