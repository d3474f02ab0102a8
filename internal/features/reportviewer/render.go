package reportviewer

import "go-crossroads/internal/features/reportconfig"

// EffectiveSelection is the selection the viewer renders with. A link that
// carries no toggles at all opens with the defaults; always-enabled fields
// are on whatever the link says.
func EffectiveSelection(reportType reportconfig.ReportType, selection reportconfig.FieldSelection) reportconfig.FieldSelection {
	if selection.Fields == nil {
		defaults := reportconfig.DefaultFieldSelection(reportType)
		defaults.OrderBy = selection.OrderBy
		defaults.OrderDirection = selection.OrderDirection
		selection = defaults
	}
	return reportconfig.EnforceAlwaysEnabled(reportType, selection)
}

// Render applies the field selection to a normalized result. Toggled-off
// fields never render even when the upstream sent them.
func Render(schema *reportconfig.Schema, result *CanonicalReportResult) *RenderedReport {
	sel := result.FieldSelection
	out := &RenderedReport{
		ReportType:     schema.Type,
		Title:          schema.Title,
		Summary:        []SummaryItem{},
		Columns:        []Column{},
		Records:        []ReportRecord{},
		Filters:        result.Filters,
		FieldSelection: sel,
		UserInfo:       result.UserInfo,
	}

	if sel.Enabled(schema.IncludeSummary) && result.Summary != nil {
		out.ShowSummary = true
		for _, f := range schema.FieldsIn(reportconfig.GroupSummary) {
			if !sel.Enabled(f.Key) {
				continue
			}
			v, ok := result.Summary[f.Key]
			if !ok {
				continue
			}
			out.Summary = append(out.Summary, SummaryItem{Key: f.Key, Label: f.Label, Value: v})
		}
	}

	if sel.Enabled(schema.IncludeRecords) && len(result.Records) > 0 {
		out.ShowRecords = true
		for _, f := range schema.FieldsIn(reportconfig.GroupRecords) {
			if sel.Enabled(f.Key) {
				out.Columns = append(out.Columns, Column{Key: f.Key, Label: f.Label})
			}
		}
		for _, rec := range result.Records {
			row := make(ReportRecord, len(out.Columns))
			for _, c := range out.Columns {
				if v, ok := rec[c.Key]; ok {
					row[c.Key] = v
				}
			}
			out.Records = append(out.Records, row)
		}
	}

	return out
}
