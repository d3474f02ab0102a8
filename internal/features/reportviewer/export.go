package reportviewer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// Export serializes the rendered records. Only columns the field selection
// enabled are written.
func Export(report *RenderedReport, format ExportFormat, now time.Time) (*ExportFile, error) {
	base := fmt.Sprintf("%s_report_%s", report.ReportType, now.Format("20060102_150405"))

	switch format {
	case ExportCSV:
		data, err := exportCSV(report)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Data: data, Filename: base + ".csv", ContentType: "text/csv"}, nil
	case ExportXLSX:
		data, err := exportXLSX(report)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Data:        data,
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func exportCSV(report *RenderedReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(report.Columns))
	for i, c := range report.Columns {
		headers[i] = c.Label
	}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, rec := range report.Records {
		row := make([]string, len(report.Columns))
		for i, c := range report.Columns {
			row[i] = FormatValue(rec[c.Key])
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXLSX(report *RenderedReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range report.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Label)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, rec := range report.Records {
		for colIdx, col := range report.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			switch v := rec[col.Key].(type) {
			case nil:
			case float64, bool:
				f.SetCellValue(sheetName, cell, v)
			default:
				f.SetCellValue(sheetName, cell, FormatValue(v))
			}
		}
	}

	for i := range report.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// FormatValue renders a normalized value as display text. Populated
// references show their name; lists are comma separated.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any:
		for _, key := range []string{"name", "fullName", "title", "label"} {
			if name, ok := val[key]; ok {
				return FormatValue(name)
			}
		}
		parts := make([]string, 0, len(val))
		for _, key := range sortedKeys(val) {
			parts = append(parts, key+": "+FormatValue(val[key]))
		}
		return strings.Join(parts, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%v", v)
}
