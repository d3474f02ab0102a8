package reportviewer

import (
	"bytes"
	"html/template"
	"maps"
	"slices"
	"time"
)

// Each record starts on a new page; the summary block is never split.
const printTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Report.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; }
  h1 { font-size: 18px; margin-bottom: 4px; }
  .meta { color: #555; margin-bottom: 16px; }
  .summary { break-inside: avoid; page-break-inside: avoid; margin-bottom: 24px; }
  .summary table, .record table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; vertical-align: top; }
  th { background: #eee; width: 30%; }
  .record { break-before: page; page-break-before: always; }
  .record:first-of-type { break-before: auto; page-break-before: auto; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Report.Title}}</h1>
<div class="meta">Generated {{.GeneratedAt}}{{with .Report.UserInfo}}{{with index . "name"}} by {{.}}{{end}}{{end}}</div>
{{if .Report.ShowSummary}}
<section class="summary">
  <h2>Summary</h2>
  <table>
  {{range .Report.Summary}}<tr><th>{{.Label}}</th><td>{{format .Value}}</td></tr>
  {{end}}</table>
</section>
{{end}}
{{if .Report.ShowRecords}}
<div class="records">
{{range $i, $rec := .Report.Records}}
<article class="record">
  <h3>Record {{inc $i}}</h3>
  <table>
  {{range $.Report.Columns}}<tr><th>{{.Label}}</th><td>{{format (index $rec .Key)}}</td></tr>
  {{end}}</table>
</article>
{{end}}
</div>
{{else}}
<p>No records.</p>
{{end}}
</body>
</html>
`

var printTmpl = template.Must(template.New("print").Funcs(template.FuncMap{
	"format": FormatValue,
	"inc":    func(i int) int { return i + 1 },
}).Parse(printTemplate))

func RenderPrint(report *RenderedReport, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := printTmpl.Execute(&buf, struct {
		Report      *RenderedReport
		GeneratedAt string
	}{
		Report:      report,
		GeneratedAt: now.Format("Jan 2, 2006 15:04"),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
