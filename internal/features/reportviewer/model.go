package reportviewer

import (
	"errors"

	"go-crossroads/internal/features/reportconfig"
)

var (
	ErrInvalidDataFormat = errors.New("invalid data format")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ReportRecord holds one normalized row. Fields the upstream did not send
// are absent, never zero-valued.
type ReportRecord map[reportconfig.FieldKey]any

type Summary map[reportconfig.FieldKey]any

// CanonicalReportResult is built once per request from the upstream payload
// and not modified afterwards.
type CanonicalReportResult struct {
	ReportType     reportconfig.ReportType     `json:"reportType"`
	Summary        Summary                     `json:"summary,omitempty"`
	Records        []ReportRecord              `json:"records"`
	Filters        reportconfig.FilterSet      `json:"filters"`
	FieldSelection reportconfig.FieldSelection `json:"fieldSelection"`
	UserInfo       map[string]any              `json:"userInfo,omitempty"`
}

type SummaryItem struct {
	Key   reportconfig.FieldKey `json:"key"`
	Label string                `json:"label"`
	Value any                   `json:"value"`
}

type Column struct {
	Key   reportconfig.FieldKey `json:"key"`
	Label string                `json:"label"`
}

// RenderedReport is what the viewer shows: only enabled sections and
// fields, in schema order.
type RenderedReport struct {
	ReportType     reportconfig.ReportType     `json:"reportType"`
	Title          string                      `json:"title"`
	ShowSummary    bool                        `json:"showSummary"`
	Summary        []SummaryItem               `json:"summary"`
	ShowRecords    bool                        `json:"showRecords"`
	Columns        []Column                    `json:"columns"`
	Records        []ReportRecord              `json:"records"`
	Filters        reportconfig.FilterSet      `json:"filters"`
	FieldSelection reportconfig.FieldSelection `json:"fieldSelection"`
	UserInfo       map[string]any              `json:"userInfo,omitempty"`
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportFile is a rendered report serialized for download.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}
