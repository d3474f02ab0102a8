package reportviewer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go-crossroads/internal/features/reportconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func renderedReferral() *RenderedReport {
	return &RenderedReport{
		ReportType:  reportconfig.ReportTypeReferral,
		Title:       "Referral Report",
		ShowSummary: true,
		Summary:     []SummaryItem{{Key: "summaryTotalReferrals", Label: "Total referrals", Value: 2.0}},
		ShowRecords: true,
		Columns: []Column{
			{Key: "referralCaseName", Label: "Case"},
			{Key: "referralAmount", Label: "Amount"},
			{Key: "referralStatus", Label: "Status"},
		},
		Records: []ReportRecord{
			{"referralCaseName": "Ann, Jr.", "referralAmount": 250.5, "referralStatus": map[string]any{"name": "Open"}},
			{"referralCaseName": "<Bo>"},
		},
	}
}

func TestExportCSV(t *testing.T) {
	file, err := Export(renderedReferral(), ExportCSV, exportTime)
	require.NoError(t, err)
	assert.Equal(t, "referral_report_20240301_093000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Case", "Amount", "Status"},
		{"Ann, Jr.", "250.5", "Open"},
		{"<Bo>", "", ""},
	}, rows)
}

func TestExportXLSX(t *testing.T) {
	file, err := Export(renderedReferral(), ExportXLSX, exportTime)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Case", "Amount", "Status"}, rows[0])
	assert.Equal(t, []string{"Ann, Jr.", "250.5", "Open"}, rows[1])
	assert.Equal(t, "<Bo>", rows[2][0])
}

func TestExportUnsupported(t *testing.T) {
	_, err := Export(renderedReferral(), "pdf", exportTime)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{3.0, "3"},
		{0.25, "0.25"},
		{true, "true"},
		{map[string]any{"_id": "1", "name": "Legal"}, "Legal"},
		{map[string]any{"b": 2.0, "a": "x"}, "a: x, b: 2"},
		{[]any{"cooking", map[string]any{"title": "art"}}, "cooking, art"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestRenderPrint(t *testing.T) {
	report := renderedReferral()
	report.UserInfo = map[string]any{"name": "Pat"}

	page, err := RenderPrint(report, exportTime)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<title>Referral Report</title>")
	assert.Contains(t, html, "break-inside: avoid")
	assert.Contains(t, html, "by Pat")
	assert.Equal(t, 2, strings.Count(html, `<article class="record">`))
	assert.Contains(t, html, "&lt;Bo&gt;", "values are escaped")
	assert.Contains(t, html, "<td>Open</td>")

	report.ShowRecords = false
	page, err = RenderPrint(report, exportTime)
	require.NoError(t, err)
	assert.Contains(t, string(page), "No records.")
}
