package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var (
	pathProp = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	outputPathProp = map[string]interface{}{
		"type":        "string",
		"description": "Optional file to write the result to. The extension picks the format. When omitted the image is returned as base64.",
	}
	toleranceProp = map[string]interface{}{
		"type":        "integer",
		"description": "Background tolerance 0-255: a pixel is backdrop when every channel is within this distance of white. Defaults to the server setting (10).",
		"minimum":     0,
		"maximum":     255,
	}
	placementProps = map[string]interface{}{
		"platform": map[string]interface{}{
			"type":        "string",
			"description": "Sales platform, e.g. LD or JJT. Selects the template and placement row.",
		},
		"product_type": map[string]interface{}{
			"type":        "string",
			"description": "Product type used to look up the placement, e.g. TV, fridge, microwave",
		},
		"offset": map[string]interface{}{
			"type":        "integer",
			"description": "Vertical offset of the product's top edge on the template. Overrides the placement table.",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Height the product is scaled to. Overrides the placement table.",
		},
		"template_path": map[string]interface{}{
			"type":        "string",
			"description": "Template image to paste onto. Defaults to the template configured for the platform.",
		},
		"tolerance": toleranceProp,
	}
)

func withProps(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and file size. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel and whether it counts as backdrop. Use it on a photo's background to choose a tolerance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based from top)",
					},
					"tolerance": toleranceProp,
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Product Detection
		{
			Name:        "image_inspect_bounds",
			Description: "Find the bounding box of the non-background product in a photo. Right and lower are the last foreground column and row; all four are -1 when the photo is blank. Optionally returns a preview with the box outlined.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProp,
					"tolerance": toleranceProp,
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a copy of the image with the box outlined",
						"default":     false,
					},
					"preview_color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color in hex",
						"default":     "#FF0000",
					},
					"output_path": outputPathProp,
				},
				"required": []string{"path"},
			},
		},

		// Geometry
		{
			Name:        "image_crop",
			Description: "Crop the region [left, right) x [upper, lower) from an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"left": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"upper": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"right": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"lower": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"output_path": outputPathProp,
				},
				"required": []string{"path", "left", "upper", "right", "lower"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Resize an image preserving its aspect ratio. Give width or height; if both are given the width wins.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
					"output_path": outputPathProp,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_paste",
			Description: "Paste an overlay image onto a base image at (x, y) using the overlay's alpha. The overlay must fit inside the base. The base file is not modified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the base image",
					},
					"overlay_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the overlay image",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate of the overlay's top-left corner",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate of the overlay's top-left corner",
					},
					"output_path": outputPathProp,
				},
				"required": []string{"base_path", "overlay_path", "x", "y"},
			},
		},

		// Combining Images
		{
			Name:        "image_layout",
			Description: "Place images side by side (horizontal) or stacked (vertical) on a solid canvas.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image paths in placement order",
					},
					"layout": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"horizontal", "vertical"},
						"default": "horizontal",
					},
					"output_path": outputPathProp,
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "image_merge",
			Description: "Blend two images: result = first*(1-alpha) + second*alpha. The second image is resized to the first's size when they differ.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path1": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the first image",
					},
					"path2": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the second image",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Weight of the second image, 0.0 to 1.0",
						"default":     0.5,
					},
					"output_path": outputPathProp,
				},
				"required": []string{"path1", "path2"},
			},
		},

		// Product Pipeline
		{
			Name:        "product_edit",
			Description: "Cut a product out of a photo on a white backdrop, scale it to the placement height and paste it centred onto the platform template.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProps(placementProps, map[string]interface{}{
					"path":        pathProp,
					"output_path": outputPathProp,
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "product_edit_batch",
			Description: "Run product_edit over many photos and write the results into a ZIP archive. Photos that fail are reported and skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProps(placementProps, map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Product photo paths",
					},
					"archive_path": map[string]interface{}{
						"type":        "string",
						"description": "ZIP file to write",
					},
				}),
				"required": []string{"paths", "archive_path"},
			},
		},

		// Spec Sheets
		{
			Name:        "specsheet_html",
			Description: "Parse 'key: value' specification text into categories and render it as an HTML table page. Lines without a separator start a new category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Specification text, one entry per line",
					},
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Page title",
						"default":     "Specifications",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional HTML file to write",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "specsheet_ocr",
			Description: "Read a specification sheet from an image with OCR, then parse and render it like specsheet_html.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp,
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code",
						"default":     "eng",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Only read this part of the image, as [left, right) x [upper, lower)",
						"properties": map[string]interface{}{
							"left":  map[string]interface{}{"type": "integer"},
							"upper": map[string]interface{}{"type": "integer"},
							"right": map[string]interface{}{"type": "integer"},
							"lower": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"left", "upper", "right", "lower"},
					},
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Page title",
						"default":     "Specifications",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional HTML file to write",
					},
				},
				"required": []string{"path"},
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
