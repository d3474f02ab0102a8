package reportconfig

import (
	"fmt"

	"go-crossroads/internal/common/models"
)

type FilterKind int

const (
	FilterText FilterKind = iota
	FilterNumber
	FilterDateRange
	FilterAmountRange
	FilterAgeRange
)

var filterKindNames = map[FilterKind]string{
	FilterText:        "text",
	FilterNumber:      "number",
	FilterDateRange:   "dateRange",
	FilterAmountRange: "amountRange",
	FilterAgeRange:    "ageRange",
}

func (k FilterKind) String() string {
	if name, ok := filterKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Bounds returns the lower and upper sub-keys of a range kind.
func (k FilterKind) Bounds() (lower, upper string, ok bool) {
	switch k {
	case FilterDateRange:
		return "startDate", "endDate", true
	case FilterAmountRange:
		return "minAmount", "maxAmount", true
	case FilterAgeRange:
		return "minAge", "maxAge", true
	}
	return "", "", false
}

func (k FilterKind) IsRange() bool {
	_, _, ok := k.Bounds()
	return ok
}

func (k FilterKind) IsNumeric() bool {
	return k == FilterNumber || k == FilterAmountRange || k == FilterAgeRange
}

// ParamSpec binds one leaf of a filter to its flat query parameter name.
// Sub is empty for scalar filters.
type ParamSpec struct {
	Sub  string
	Name string
}

type FilterSpec struct {
	Key       string
	Label     string
	Kind      FilterKind
	Section   string
	Reference models.ReferenceKind
	Params    []ParamSpec
}

type FieldGroup string

const (
	GroupSections FieldGroup = "sections"
	GroupSummary  FieldGroup = "summary"
	GroupRecords  FieldGroup = "records"
)

// FieldSpec describes one toggle of a FieldSelection. Sources lists the
// candidate locations of the value in the upstream payload, most specific
// first.
type FieldSpec struct {
	Key           FieldKey
	Label         string
	Group         FieldGroup
	Default       bool
	AlwaysEnabled bool
	Sources       []string
}

type Schema struct {
	Type                  ReportType
	Title                 string
	Encoding              Encoding
	ViewerPath            string
	UpstreamPath          string
	IncludeSummary        FieldKey
	IncludeRecords        FieldKey
	DefaultOrderBy        string
	DefaultOrderDirection OrderDirection
	SortFields            []string
	Filters               []FilterSpec
	Fields                []FieldSpec
}

var registry = map[ReportType]*Schema{}

func register(s *Schema) {
	if _, dup := registry[s.Type]; dup {
		panic(fmt.Sprintf("report schema %q registered twice", s.Type))
	}
	seen := map[string]bool{}
	for _, f := range s.Filters {
		for _, p := range f.Params {
			if seen[p.Name] {
				panic(fmt.Sprintf("report schema %q: flat parameter %q reused", s.Type, p.Name))
			}
			seen[p.Name] = true
		}
	}
	for _, f := range s.Fields {
		if seen[string(f.Key)] {
			panic(fmt.Sprintf("report schema %q: key %q reused", s.Type, f.Key))
		}
		seen[string(f.Key)] = true
	}
	registry[s.Type] = s
}

func Lookup(reportType ReportType) (*Schema, error) {
	s, ok := registry[reportType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, reportType)
	}
	return s, nil
}

// MustSchema is for callers that already validated the report type.
func MustSchema(reportType ReportType) *Schema {
	s, err := Lookup(reportType)
	if err != nil {
		panic(err)
	}
	return s
}

// Types lists the registered report types in a stable order.
func Types() []ReportType {
	return []ReportType{
		ReportTypeCase,
		ReportTypeCategory,
		ReportTypeEvent,
		ReportTypeReferral,
		ReportTypeOutcomeGoals,
		ReportTypeAssistance,
	}
}

func (s *Schema) Field(key FieldKey) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (s *Schema) FieldsIn(group FieldGroup) []FieldSpec {
	var out []FieldSpec
	for _, f := range s.Fields {
		if f.Group == group {
			out = append(out, f)
		}
	}
	return out
}

func (s *Schema) Filter(key string) (FilterSpec, bool) {
	for _, f := range s.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterSpec{}, false
}

func (s *Schema) IsSortable(field string) bool {
	for _, f := range s.SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// Sections lists the filter accordion sections in declaration order.
func (s *Schema) Sections() []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range s.Filters {
		if f.Section == "" || seen[f.Section] {
			continue
		}
		seen[f.Section] = true
		out = append(out, f.Section)
	}
	return out
}

// ReferenceLists returns the reference lists the builder must load.
func (s *Schema) ReferenceLists() []models.ReferenceKind {
	var out []models.ReferenceKind
	seen := map[models.ReferenceKind]bool{}
	for _, f := range s.Filters {
		if f.Reference == "" || seen[f.Reference] {
			continue
		}
		seen[f.Reference] = true
		out = append(out, f.Reference)
	}
	return out
}

func scalar(key, label, section string, ref models.ReferenceKind) FilterSpec {
	return FilterSpec{
		Key:       key,
		Label:     label,
		Kind:      FilterText,
		Section:   section,
		Reference: ref,
		Params:    []ParamSpec{{Name: key}},
	}
}

func rangeOf(kind FilterKind, key, label, section, lowerParam, upperParam string) FilterSpec {
	lower, upper, _ := kind.Bounds()
	return FilterSpec{
		Key:     key,
		Label:   label,
		Kind:    kind,
		Section: section,
		Params:  []ParamSpec{{Sub: lower, Name: lowerParam}, {Sub: upper, Name: upperParam}},
	}
}

func section(key FieldKey, label string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Group: GroupSections, Default: true}
}

func summary(key FieldKey, label string, sources ...string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Group: GroupSummary, Default: true, Sources: sources}
}

func record(key FieldKey, label string, sources ...string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Group: GroupRecords, Default: true, Sources: sources}
}

func always(f FieldSpec) FieldSpec {
	f.AlwaysEnabled = true
	f.Default = true
	return f
}

func off(f FieldSpec) FieldSpec {
	f.Default = false
	return f
}
