package server

import (
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_sample_color",
		"image_inspect_bounds",
		"image_crop",
		"image_resize",
		"image_paste",
		"image_layout",
		"image_merge",
		"product_edit",
		"product_edit_batch",
		"specsheet_html",
		"specsheet_ocr",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}

			// every required parameter must be declared
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"image_crop":         {"path", "left", "upper", "right", "lower"},
		"image_paste":        {"base_path", "overlay_path", "x", "y"},
		"image_merge":        {"path1", "path2"},
		"product_edit":       {"path"},
		"product_edit_batch": {"paths", "archive_path"},
		"specsheet_html":     {"text"},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			required := toolByName(t, name).InputSchema["required"].([]string)
			have := make(map[string]bool)
			for _, r := range required {
				have[r] = true
			}
			for _, w := range want {
				if !have[w] {
					t.Errorf("%s should require %s", name, w)
				}
			}
		})
	}
}

func TestToolDefinitions_PlacementParameters(t *testing.T) {
	for _, name := range []string{"product_edit", "product_edit_batch"} {
		props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})
		for _, p := range []string{"platform", "product_type", "offset", "height", "template_path", "tolerance"} {
			if _, ok := props[p]; !ok {
				t.Errorf("%s missing %s parameter", name, p)
			}
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"image_inspect_bounds": {"preview": false, "preview_color": "#FF0000"},
		"image_layout":         {"layout": "horizontal"},
		"image_merge":          {"alpha": 0.5},
		"specsheet_html":       {"title": "Specifications"},
		"specsheet_ocr":        {"language": "eng"},
	}

	for toolName, expectedDefaults := range toolDefaults {
		props := toolByName(t, toolName).InputSchema["properties"].(map[string]interface{})

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if actual, ok := param["default"]; !ok || actual != expected {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, param["default"], expected)
			}
		}
	}
}

func TestToolDefinitions_LayoutEnum(t *testing.T) {
	props := toolByName(t, "image_layout").InputSchema["properties"].(map[string]interface{})
	enum, ok := props["layout"].(map[string]interface{})["enum"].([]string)
	if !ok {
		t.Fatal("layout should have enum")
	}
	if len(enum) != 2 || enum[0] != "horizontal" || enum[1] != "vertical" {
		t.Errorf("layout enum: got %v", enum)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
