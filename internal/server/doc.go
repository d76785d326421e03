// Package server implements the MCP (Model Context Protocol) server for color
// naming and image editing tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Color Conversion:
//   - color_hex_to_rgb, color_rgb_to_hsl, color_hex_to_hsl
//   - color_validate_hex, color_validate_rgb
//
// Classification:
//   - color_name: Nearest named color with shade and base family
//
// Image Analysis:
//   - image_load: Metadata and black/white share
//   - image_sample_color: Color and name of one pixel
//   - image_hex_colors: Color histogram, optionally rounded
//   - image_base_colors: Names of the most used colors
//   - image_black_white: Percentage of gray pixels
//
// Editing:
//   - image_edit: Ordered filter/crop/resize/rotate/flip pipeline, saved to
//     a file or returned as base64 PNG
//
// # Catalog
//
// The color catalog is built by the caller and passed to New. It is built
// once on first use and shared read-only by all tool calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
