package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/product-compositor/internal/imaging"
	"github.com/ironsheep/product-compositor/internal/packaging"
	"github.com/ironsheep/product-compositor/internal/pipeline"
	"github.com/ironsheep/product-compositor/internal/specsheet"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "product_edit").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Product Detection
	case "image_inspect_bounds":
		return s.handleImageInspectBounds(args)

	// Geometry
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_paste":
		return s.handleImagePaste(args)

	// Combining Images
	case "image_layout":
		return s.handleImageLayout(args)
	case "image_merge":
		return s.handleImageMerge(args)

	// Product Pipeline
	case "product_edit":
		return s.handleProductEdit(args)
	case "product_edit_batch":
		return s.handleProductEditBatch(args)

	// Spec Sheets
	case "specsheet_html":
		return s.handleSpecsheetHTML(args)
	case "specsheet_ocr":
		return s.handleSpecsheetOCR(args)

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

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// SavedImage is returned instead of image data when a tool writes its result
// to disk.
type SavedImage struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// emitImage saves img to outputPath when one is given and otherwise returns it
// base64-encoded in the configured output format.
func (s *Server) emitImage(img image.Image, outputPath string) (interface{}, error) {
	if outputPath == "" {
		return s.encoder.Base64(img)
	}
	if err := s.encoder.Save(outputPath, img); err != nil {
		return nil, err
	}
	return &SavedImage{Path: outputPath, Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}, nil
}

func (s *Server) tolerance(t *int) (int, error) {
	if t == nil {
		return s.cfg.Tolerance, nil
	}
	if *t < 0 || *t > imaging.MaxTolerance {
		return 0, fmt.Errorf("tolerance %d outside 0-%d", *t, imaging.MaxTolerance)
	}
	return *t, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path      string `json:"path"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Tolerance *int   `json:"tolerance"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	tol, err := s.tolerance(a.Tolerance)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y, tol)
}

// === Product Detection Handlers ===

type imageInspectBoundsArgs struct {
	Path         string `json:"path"`
	Tolerance    *int   `json:"tolerance"`
	Preview      bool   `json:"preview"`
	PreviewColor string `json:"preview_color"`
	OutputPath   string `json:"output_path"`
}

// InspectBoundsResult reports the detected product box.
type InspectBoundsResult struct {
	Bounds    imaging.BoundingBox `json:"bounds"`
	Found     bool                `json:"found"`
	Tolerance int                 `json:"tolerance"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Preview   interface{}         `json:"preview,omitempty"`
}

func (s *Server) handleImageInspectBounds(args json.RawMessage) (interface{}, error) {
	var a imageInspectBoundsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PreviewColor == "" {
		a.PreviewColor = imaging.DefaultPreviewColor
	}
	tol, err := s.tolerance(a.Tolerance)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	box := imaging.ScanBounds(img, tol)
	result := &InspectBoundsResult{
		Bounds:    box,
		Found:     box.Found(),
		Tolerance: tol,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
	}

	if a.Preview || a.OutputPath != "" {
		preview, err := imaging.BoundsPreview(img, box, a.PreviewColor)
		if err != nil {
			return nil, err
		}
		if result.Preview, err = s.emitImage(preview, a.OutputPath); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// === Geometry Handlers ===

type imageCropArgs struct {
	Path       string `json:"path"`
	Left       int    `json:"left"`
	Upper      int    `json:"upper"`
	Right      int    `json:"right"`
	Lower      int    `json:"lower"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(img, a.Left, a.Upper, a.Right, a.Lower)
	if err != nil {
		return nil, err
	}
	return s.emitImage(cropped, a.OutputPath)
}

type imageResizeArgs struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	resized, err := imaging.Resize(img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return s.emitImage(resized, a.OutputPath)
}

type imagePasteArgs struct {
	BasePath    string `json:"base_path"`
	OverlayPath string `json:"overlay_path"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	OutputPath  string `json:"output_path"`
}

func (s *Server) handleImagePaste(args json.RawMessage) (interface{}, error) {
	var a imagePasteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	base, err := s.cache.Load(a.BasePath)
	if err != nil {
		return nil, err
	}
	overlay, err := s.cache.Load(a.OverlayPath)
	if err != nil {
		return nil, err
	}

	// Cached images are shared; paste onto a copy.
	out, err := imaging.Paste(clone.AsRGBA(base), overlay, image.Pt(a.X, a.Y))
	if err != nil {
		return nil, err
	}
	return s.emitImage(out, a.OutputPath)
}

// === Combining Image Handlers ===

type imageLayoutArgs struct {
	Paths      []string `json:"paths"`
	Layout     string   `json:"layout"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageLayout(args json.RawMessage) (interface{}, error) {
	var a imageLayoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Layout == "" {
		a.Layout = string(imaging.LayoutHorizontal)
	}
	layout, err := imaging.ParseLayout(a.Layout)
	if err != nil {
		return nil, err
	}

	images := make([]image.Image, 0, len(a.Paths))
	for _, p := range a.Paths {
		img, err := s.cache.Load(p)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	out, err := imaging.LayoutImages(images, layout, s.canvas)
	if err != nil {
		return nil, err
	}
	return s.emitImage(out, a.OutputPath)
}

type imageMergeArgs struct {
	Path1      string   `json:"path1"`
	Path2      string   `json:"path2"`
	Alpha      *float64 `json:"alpha"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageMerge(args json.RawMessage) (interface{}, error) {
	var a imageMergeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	alpha := 0.5
	if a.Alpha != nil {
		alpha = *a.Alpha
	}
	img1, err := s.cache.Load(a.Path1)
	if err != nil {
		return nil, err
	}
	img2, err := s.cache.Load(a.Path2)
	if err != nil {
		return nil, err
	}
	return s.emitImage(imaging.Merge(img1, img2, alpha), a.OutputPath)
}

// === Product Pipeline Handlers ===

type placementArgs struct {
	Platform     string `json:"platform"`
	ProductType  string `json:"product_type"`
	Offset       *int   `json:"offset"`
	Height       *int   `json:"height"`
	TemplatePath string `json:"template_path"`
	Tolerance    *int   `json:"tolerance"`
}

// resolvePlacement looks the placement up by platform and product type.
// An explicit offset or height overrides the looked-up value; with both
// given no lookup is needed.
func (s *Server) resolvePlacement(a placementArgs) (pipeline.Placement, error) {
	var p pipeline.Placement
	if a.Offset == nil || a.Height == nil {
		var err error
		if p, err = s.placements.Placement(a.Platform, a.ProductType); err != nil {
			return pipeline.Placement{}, err
		}
	}
	if a.Offset != nil {
		p.Offset = *a.Offset
	}
	if a.Height != nil {
		p.Height = *a.Height
	}
	return p, nil
}

func (s *Server) resolveTemplate(a placementArgs) (image.Image, error) {
	path := a.TemplatePath
	if path == "" {
		var ok bool
		if path, ok = s.cfg.Template(a.Platform); !ok {
			return nil, fmt.Errorf("no template configured for platform %q", a.Platform)
		}
	}
	return s.cache.Load(path)
}

// editorFor returns the shared editor, or a copy with a different tolerance.
func (s *Server) editorFor(t *int) (*pipeline.Editor, error) {
	if t == nil {
		return s.editor, nil
	}
	tol, err := s.tolerance(t)
	if err != nil {
		return nil, err
	}
	e := *s.editor
	e.Tolerance = tol
	return &e, nil
}

type productEditArgs struct {
	placementArgs
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

// ProductEditResult describes a finished composite.
type ProductEditResult struct {
	Product   string             `json:"product"`
	Placement pipeline.Placement `json:"placement"`
	Image     interface{}        `json:"image"`
}

func (s *Server) handleProductEdit(args json.RawMessage) (interface{}, error) {
	var a productEditArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	editor, err := s.editorFor(a.Tolerance)
	if err != nil {
		return nil, err
	}
	placement, err := s.resolvePlacement(a.placementArgs)
	if err != nil {
		return nil, err
	}
	template, err := s.resolveTemplate(a.placementArgs)
	if err != nil {
		return nil, err
	}

	// Product photos are edited once; keep them out of the cache.
	input, err := imaging.Open(a.Path)
	if err != nil {
		return nil, err
	}

	out, err := editor.Run(input, template, placement)
	if err != nil {
		return nil, err
	}

	encoded, err := s.emitImage(out, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &ProductEditResult{Product: filepath.Base(a.Path), Placement: placement, Image: encoded}, nil
}

type productEditBatchArgs struct {
	placementArgs
	Paths       []string `json:"paths"`
	ArchivePath string   `json:"archive_path"`
}

// BatchItemResult is the outcome for one photo of a batch.
type BatchItemResult struct {
	Product string `json:"product"`
	OK      bool   `json:"ok"`
	Stage   string `json:"stage,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult summarises a product_edit_batch call.
type BatchResult struct {
	Items     []BatchItemResult   `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Archive   string              `json:"archive"`
	Manifest  *packaging.Manifest `json:"manifest"`
}

func (s *Server) handleProductEditBatch(args json.RawMessage) (interface{}, error) {
	var a productEditBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, errors.New("paths must list at least one image")
	}
	if a.ArchivePath == "" {
		return nil, errors.New("archive_path is required")
	}
	editor, err := s.editorFor(a.Tolerance)
	if err != nil {
		return nil, err
	}
	placement, err := s.resolvePlacement(a.placementArgs)
	if err != nil {
		return nil, err
	}
	template, err := s.resolveTemplate(a.placementArgs)
	if err != nil {
		return nil, err
	}

	// Unreadable photos fail up front; the rest go through the editor.
	results := make([]pipeline.Result, len(a.Paths))
	var items []pipeline.Item
	var slots []int
	for i, p := range a.Paths {
		product := filepath.Base(p)
		img, err := imaging.Open(p)
		if err != nil {
			results[i] = pipeline.Result{Product: product, Err: err}
			continue
		}
		items = append(items, pipeline.Item{Product: product, Image: img, Placement: placement})
		slots = append(slots, i)
	}
	for j, r := range editor.RunBatch(items, template) {
		results[slots[j]] = r
	}

	manifest, err := packaging.SaveZip(a.ArchivePath, results, s.encoder)
	if err != nil {
		return nil, err
	}

	summary := &BatchResult{Archive: a.ArchivePath, Manifest: manifest}
	for _, r := range results {
		item := BatchItemResult{Product: r.Product, OK: r.Err == nil}
		if r.Err != nil {
			summary.Failed++
			item.Error = r.Err.Error()
			var editErr *pipeline.EditError
			if errors.As(r.Err, &editErr) {
				item.Stage = editErr.Stage.String()
			}
		} else {
			summary.Succeeded++
		}
		summary.Items = append(summary.Items, item)
	}
	return summary, nil
}

// === Spec Sheet Handlers ===

// SpecsheetResult carries a rendered spec sheet.
type SpecsheetResult struct {
	Categories int    `json:"categories"`
	Rows       int    `json:"rows"`
	HTML       string `json:"html,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) renderSpecsheet(sheet *specsheet.Sheet, title, outputPath string) (interface{}, error) {
	var buf bytes.Buffer
	if err := specsheet.RenderHTML(&buf, title, sheet); err != nil {
		return nil, err
	}

	result := &SpecsheetResult{Categories: len(sheet.Categories), Rows: sheet.Len()}
	if outputPath == "" {
		result.HTML = buf.String()
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write spec sheet: %w", err)
	}
	result.OutputPath = outputPath
	return result, nil
}

type specsheetHTMLArgs struct {
	Text       string `json:"text"`
	Title      string `json:"title"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleSpecsheetHTML(args json.RawMessage) (interface{}, error) {
	var a specsheetHTMLArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.renderSpecsheet(specsheet.Parse(a.Text), a.Title, a.OutputPath)
}

// ocrRegion is a [left, right) x [upper, lower) rectangle, as image_crop takes.
type ocrRegion struct {
	Left  int `json:"left"`
	Upper int `json:"upper"`
	Right int `json:"right"`
	Lower int `json:"lower"`
}

type specsheetOCRArgs struct {
	Path       string     `json:"path"`
	Language   string     `json:"language"`
	Region     *ocrRegion `json:"region"`
	Title      string     `json:"title"`
	OutputPath string     `json:"output_path"`
}

func (s *Server) handleSpecsheetOCR(args json.RawMessage) (interface{}, error) {
	var a specsheetOCRArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}

	var sheet *specsheet.Sheet
	if a.Region == nil {
		var err error
		if sheet, err = specsheet.FromImage(a.Path, a.Language); err != nil {
			return nil, err
		}
	} else {
		// Decode here so the region is measured on the upright image.
		img, err := imaging.Open(a.Path)
		if err != nil {
			return nil, err
		}
		r := image.Rect(a.Region.Left, a.Region.Upper, a.Region.Right, a.Region.Lower)
		if sheet, err = specsheet.FromRegion(img, r, a.Language); err != nil {
			return nil, err
		}
	}
	return s.renderSpecsheet(sheet, a.Title, a.OutputPath)
}
