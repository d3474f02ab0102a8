package reportconfig

import (
	"encoding/json"
	"errors"
)

type ReportType string

const (
	ReportTypeCase         ReportType = "case"
	ReportTypeCategory     ReportType = "category"
	ReportTypeEvent        ReportType = "event"
	ReportTypeReferral     ReportType = "referral"
	ReportTypeOutcomeGoals ReportType = "outcome-goals"
	ReportTypeAssistance   ReportType = "assistance"
)

// Encoding selects how a report request travels in the viewer URL.
type Encoding string

const (
	EncodingFlat Encoding = "flat"
	EncodingBlob Encoding = "blob"
)

type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

const (
	KeyOrderBy        = "orderBy"
	KeyOrderDirection = "orderDirection"
)

var (
	ErrUnknownReportType = errors.New("unknown report type")
	ErrUnknownFilter     = errors.New("unknown filter")
	ErrInvalidFilter     = errors.New("invalid filter value")
	ErrInvertedRange     = errors.New("range start is after range end")
	ErrInvalidOrder      = errors.New("invalid order")
)

type FieldKey string

// FilterSet maps a filter name to a scalar or a range object such as
// {"startDate": "...", "endDate": "..."}. Absent keys mean no constraint.
type FilterSet map[string]any

func (f FilterSet) Clone() FilterSet {
	if f == nil {
		return nil
	}
	out := make(FilterSet, len(f))
	for k, v := range f {
		if sub, ok := v.(map[string]any); ok {
			cp := make(map[string]any, len(sub))
			for sk, sv := range sub {
				cp[sk] = sv
			}
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// FieldSelection holds the include/exclude toggles of a report plus the
// two ordering control keys. It marshals to a single flat JSON object.
type FieldSelection struct {
	Fields         map[FieldKey]bool
	OrderBy        string
	OrderDirection OrderDirection
}

func (s FieldSelection) Enabled(key FieldKey) bool {
	return s.Fields[key]
}

func (s FieldSelection) Clone() FieldSelection {
	out := FieldSelection{OrderBy: s.OrderBy, OrderDirection: s.OrderDirection}
	if s.Fields != nil {
		out.Fields = make(map[FieldKey]bool, len(s.Fields))
		for k, v := range s.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

func (s FieldSelection) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Fields)+2)
	for k, v := range s.Fields {
		m[string(k)] = v
	}
	if s.OrderBy != "" {
		m[KeyOrderBy] = s.OrderBy
	}
	if s.OrderDirection != "" {
		m[KeyOrderDirection] = string(s.OrderDirection)
	}
	return json.Marshal(m)
}

// UnmarshalJSON keeps boolean keys and the two order keys; anything else is
// ignored.
func (s *FieldSelection) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = FieldSelection{}
	for k, v := range raw {
		switch k {
		case KeyOrderBy:
			_ = json.Unmarshal(v, &s.OrderBy)
		case KeyOrderDirection:
			var dir string
			if err := json.Unmarshal(v, &dir); err == nil {
				s.OrderDirection = OrderDirection(dir)
			}
		default:
			var b bool
			if err := json.Unmarshal(v, &b); err != nil {
				continue
			}
			if s.Fields == nil {
				s.Fields = make(map[FieldKey]bool)
			}
			s.Fields[FieldKey(k)] = b
		}
	}
	return nil
}

// DefaultFieldSelection returns the selection a builder starts with.
func DefaultFieldSelection(reportType ReportType) FieldSelection {
	schema := MustSchema(reportType)
	sel := FieldSelection{
		Fields:         make(map[FieldKey]bool, len(schema.Fields)),
		OrderBy:        schema.DefaultOrderBy,
		OrderDirection: schema.DefaultOrderDirection,
	}
	for _, f := range schema.Fields {
		sel.Fields[f.Key] = f.Default || f.AlwaysEnabled
	}
	return sel
}

func IsAlwaysEnabled(reportType ReportType, key FieldKey) bool {
	schema, err := Lookup(reportType)
	if err != nil {
		return false
	}
	spec, ok := schema.Field(key)
	return ok && spec.AlwaysEnabled
}

// ToggleField flips key and returns the new selection. Always-enabled and
// undeclared keys leave the selection unchanged.
func ToggleField(reportType ReportType, selection FieldSelection, key FieldKey) FieldSelection {
	schema, err := Lookup(reportType)
	if err != nil {
		return selection
	}
	spec, ok := schema.Field(key)
	if !ok || spec.AlwaysEnabled {
		return selection
	}
	out := selection.Clone()
	if out.Fields == nil {
		out.Fields = make(map[FieldKey]bool)
	}
	out.Fields[key] = !out.Fields[key]
	return out
}

func SetOrder(reportType ReportType, selection FieldSelection, orderBy string, direction OrderDirection) (FieldSelection, error) {
	schema, err := Lookup(reportType)
	if err != nil {
		return selection, err
	}
	if direction != OrderAsc && direction != OrderDesc {
		return selection, ErrInvalidOrder
	}
	if !schema.IsSortable(orderBy) {
		return selection, ErrInvalidOrder
	}
	out := selection.Clone()
	out.OrderBy = orderBy
	out.OrderDirection = direction
	return out, nil
}

// EnforceAlwaysEnabled forces every always-enabled key of the schema on.
func EnforceAlwaysEnabled(reportType ReportType, selection FieldSelection) FieldSelection {
	schema, err := Lookup(reportType)
	if err != nil {
		return selection
	}
	out := selection.Clone()
	for _, f := range schema.Fields {
		if !f.AlwaysEnabled {
			continue
		}
		if out.Fields == nil {
			out.Fields = make(map[FieldKey]bool)
		}
		out.Fields[f.Key] = true
	}
	return out
}
