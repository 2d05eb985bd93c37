package specsheet

import (
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("specsheet").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f2f2f2; }
td.key { width: 35%; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Sheet.Categories}}
<table>
<tr><th colspan="2">{{.Name}}</th></tr>
{{- range .Rows}}
<tr><td class="key">{{.Key}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

// RenderHTML writes sheet as a standalone HTML document with one table per
// category. All text is escaped.
func RenderHTML(w io.Writer, title string, sheet *Sheet) error {
	if title == "" {
		title = "Specifications"
	}
	data := struct {
		Title string
		Sheet *Sheet
	}{title, sheet}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render spec sheet: %w", err)
	}
	return nil
}
