// Package server implements the MCP (Model Context Protocol) server for the
// product compositor.
//
// This package provides a JSON-RPC 2.0 server that exposes the compositing
// pipeline and its building blocks as tools, so catalogue editors can drive
// them from any MCP-compatible client.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel and its backdrop classification
//
// Product Detection:
//   - image_inspect_bounds: Find the product bounding box, optionally outlined
//
// Geometry:
//   - image_crop: Extract rectangular region
//   - image_resize: Aspect-preserving resize
//   - image_paste: Alpha paste at a position
//
// Combining Images:
//   - image_layout: Horizontal or vertical strip
//   - image_merge: Alpha blend of two images
//
// Product Pipeline:
//   - product_edit: Scan, crop, resize and composite one photo
//   - product_edit_batch: Same for many photos, packaged as ZIP
//
// Spec Sheets:
//   - specsheet_html: Parse specification text and render HTML
//   - specsheet_ocr: OCR a spec-sheet image, or one region of it, then parse and render
//
// # Image Caching
//
// Templates and images inspected by the single-image tools are cached by path.
// A cached entry is dropped when the file's size or modification time
// changes, so replacing a template's artwork takes effect on the next call.
// Product photos passed to product_edit and product_edit_batch are decoded
// once and not cached.
//
// # Image Output
//
// Tools producing an image return it base64-encoded in the configured output
// format, or write it to output_path when one is given.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, placements)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
