package reportviewer

import (
	"testing"

	"go-crossroads/internal/features/reportconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caseResult() *CanonicalReportResult {
	return &CanonicalReportResult{
		ReportType: reportconfig.ReportTypeCase,
		Summary: Summary{
			"summaryTotalCases":      12.0,
			"summaryGenderBreakdown": map[string]any{"f": 7.0, "m": 5.0},
		},
		Records: []ReportRecord{
			{"caseFullName": "Ann", "caseEmail": "ann@example.org", "caseNumber": "C-1", "caseOtherInfo": "secret", "casePhone": "555"},
			{"caseFullName": "Bo", "caseNumber": "C-2"},
		},
		Filters:        reportconfig.FilterSet{},
		FieldSelection: reportconfig.DefaultFieldSelection(reportconfig.ReportTypeCase),
	}
}

func TestRenderDefaults(t *testing.T) {
	schema := reportconfig.MustSchema(reportconfig.ReportTypeCase)
	out := Render(schema, caseResult())

	assert.True(t, out.ShowSummary)
	assert.Equal(t, []SummaryItem{
		{Key: "summaryTotalCases", Label: "Total cases", Value: 12.0},
		{Key: "summaryGenderBreakdown", Label: "Gender breakdown", Value: map[string]any{"f": 7.0, "m": 5.0}},
	}, out.Summary)

	require.True(t, out.ShowRecords)
	for _, c := range out.Columns {
		assert.NotEqual(t, reportconfig.FieldKey("caseOtherInfo"), c.Key, "defaults-off column rendered")
	}
	assert.NotContains(t, out.Records[0], reportconfig.FieldKey("caseOtherInfo"))
	assert.Equal(t, "555", out.Records[0]["casePhone"])
	assert.NotContains(t, out.Records[1], reportconfig.FieldKey("caseEmail"), "absent stays absent")
}

func TestRenderGating(t *testing.T) {
	schema := reportconfig.MustSchema(reportconfig.ReportTypeCase)

	tests := []struct {
		name        string
		mutate      func(r *CanonicalReportResult)
		wantSummary bool
		wantRecords bool
	}{
		{
			name: "summary section off",
			mutate: func(r *CanonicalReportResult) {
				r.FieldSelection = reportconfig.ToggleField(reportconfig.ReportTypeCase, r.FieldSelection, "includeCaseSummary")
			},
			wantRecords: true,
		},
		{
			name:        "null summary",
			mutate:      func(r *CanonicalReportResult) { r.Summary = nil },
			wantRecords: true,
		},
		{
			name: "records section off",
			mutate: func(r *CanonicalReportResult) {
				r.FieldSelection = reportconfig.ToggleField(reportconfig.ReportTypeCase, r.FieldSelection, "includeCaseRecords")
			},
			wantSummary: true,
		},
		{
			name:        "no records",
			mutate:      func(r *CanonicalReportResult) { r.Records = []ReportRecord{} },
			wantSummary: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := caseResult()
			tt.mutate(result)
			out := Render(schema, result)
			assert.Equal(t, tt.wantSummary, out.ShowSummary)
			assert.Equal(t, tt.wantRecords, out.ShowRecords)
			if !tt.wantSummary {
				assert.Empty(t, out.Summary)
			}
			if !tt.wantRecords {
				assert.Empty(t, out.Records)
				assert.Empty(t, out.Columns)
			}
		})
	}
}

func TestRenderSummarySubsectionGate(t *testing.T) {
	schema := reportconfig.MustSchema(reportconfig.ReportTypeCase)
	result := caseResult()
	result.FieldSelection = reportconfig.ToggleField(reportconfig.ReportTypeCase, result.FieldSelection, "summaryGenderBreakdown")

	out := Render(schema, result)
	require.Len(t, out.Summary, 1)
	assert.Equal(t, reportconfig.FieldKey("summaryTotalCases"), out.Summary[0].Key)
}

func TestEffectiveSelection(t *testing.T) {
	sel := EffectiveSelection(reportconfig.ReportTypeCase, reportconfig.FieldSelection{OrderBy: "fullName"})
	assert.True(t, sel.Fields["includeCaseRecords"])
	assert.False(t, sel.Fields["caseOtherInfo"])
	assert.Equal(t, "fullName", sel.OrderBy)

	tampered := reportconfig.FieldSelection{Fields: map[reportconfig.FieldKey]bool{"caseFullName": false, "includeCaseRecords": true}}
	sel = EffectiveSelection(reportconfig.ReportTypeCase, tampered)
	assert.True(t, sel.Fields["caseFullName"])
	assert.False(t, sel.Fields["casePhone"], "explicit links are not back-filled")
}
