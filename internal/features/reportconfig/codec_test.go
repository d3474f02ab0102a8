package reportconfig

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"go-crossroads/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fullFilters sets every recognized filter leaf of a schema.
func fullFilters(schema *Schema) FilterSet {
	f := FilterSet{}
	for _, spec := range schema.Filters {
		switch {
		case spec.Kind == FilterDateRange:
			f[spec.Key] = map[string]any{"startDate": "2024-01-01", "endDate": "2024-12-31"}
		case spec.Kind.IsRange():
			lower, upper, _ := spec.Kind.Bounds()
			f[spec.Key] = map[string]any{lower: 10.0, upper: 20.5}
		case spec.Kind.IsNumeric():
			f[spec.Key] = 3.0
		default:
			f[spec.Key] = "value-" + spec.Key
		}
	}
	return f
}

func parse(t *testing.T, q Query) url.Values {
	t.Helper()
	values, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)
	return values
}

func TestFlatRoundTrip(t *testing.T) {
	for _, rt := range Types() {
		schema := MustSchema(rt)
		if schema.Encoding != EncodingFlat {
			continue
		}
		t.Run(string(rt), func(t *testing.T) {
			filters := fullFilters(schema)
			selection := DefaultFieldSelection(rt)
			for _, f := range schema.Fields {
				selection = ToggleField(rt, selection, f.Key)
			}

			gotFilters, gotSelection, err := DecodeFlat(schema, parse(t, EncodeFlat(schema, filters, selection)))
			require.NoError(t, err)
			assert.Equal(t, filters, gotFilters)
			assert.Equal(t, selection, gotSelection)
		})
	}
}

func TestFlatRoundTripPartial(t *testing.T) {
	schema := MustSchema(ReportTypeReferral)
	filters := FilterSet{
		"amountRange":   map[string]any{"maxAmount": 500.0},
		"deadlineRange": map[string]any{"startDate": "2024-02-01"},
		"statusId":      "open",
	}
	selection := FieldSelection{Fields: map[FieldKey]bool{"referralNotes": true}}

	gotFilters, gotSelection, err := DecodeFlat(schema, parse(t, EncodeFlat(schema, filters, selection)))
	require.NoError(t, err)
	assert.Equal(t, filters, gotFilters)
	assert.Equal(t, selection, gotSelection)
}

func TestFlatKeyDictionary(t *testing.T) {
	schema := MustSchema(ReportTypeReferral)
	filters := FilterSet{
		"dateRange":     map[string]any{"startDate": "2024-01-01", "endDate": "2024-01-31"},
		"deadlineRange": map[string]any{"startDate": "2024-02-01", "endDate": "2024-02-28"},
		"amountRange":   map[string]any{"minAmount": 100.0, "maxAmount": 500.0},
	}
	encoded := EncodeFlat(schema, filters, FieldSelection{}).Encode()

	assert.Equal(t,
		"startDate=2024-01-01&endDate=2024-01-31&deadlineStartDate=2024-02-01&deadlineEndDate=2024-02-28&minAmount=100&maxAmount=500",
		encoded,
	)
}

func TestFlatEncodeCaseDefaults(t *testing.T) {
	schema := MustSchema(ReportTypeCase)
	encoded := EncodeFlat(schema, FilterSet{}, DefaultFieldSelection(ReportTypeCase)).Encode()

	assert.True(t, strings.HasSuffix(encoded, "orderBy=createdAt&orderDirection=desc"))
	assert.Contains(t, encoded, "caseFullName=true")
	assert.Contains(t, encoded, "caseOtherInfo=false")
	assert.NotContains(t, encoded, "caseOtherInfo=true")
}

func TestFlatEncodeSkipsAbsentAndEmpty(t *testing.T) {
	schema := MustSchema(ReportTypeCase)
	filters := FilterSet{
		"city":      "",
		"gender":    nil,
		"dateRange": map[string]any{"startDate": "", "endDate": "2024-03-01"},
	}
	assert.Equal(t, "endDate=2024-03-01", EncodeFlat(schema, filters, FieldSelection{}).Encode())
}

func TestDecodeFlatTolerance(t *testing.T) {
	schema := MustSchema(ReportTypeCase)
	full := parse(t, EncodeFlat(schema, fullFilters(schema), DefaultFieldSelection(ReportTypeCase)))

	keys := make([]string, 0, len(full))
	for k := range full {
		keys = append(keys, k)
	}

	// drop every other key, then everything
	for _, step := range []int{1, 2, 3} {
		values := url.Values{}
		for i, k := range keys {
			if i%step == 0 {
				continue
			}
			values[k] = full[k]
		}
		assert.NotPanics(t, func() {
			filters, selection, err := DecodeFlat(schema, values)
			require.NoError(t, err)
			for _, spec := range schema.Filters {
				for _, p := range spec.Params {
					if _, present := values[p.Name]; present {
						continue
					}
					_, ok := filterLeaf(filters, spec.Key, p.Sub)
					assert.False(t, ok, "%s should be absent", p.Name)
				}
			}
			for _, f := range schema.Fields {
				if _, present := values[string(f.Key)]; !present {
					_, ok := selection.Fields[f.Key]
					assert.False(t, ok, "%s should be absent", f.Key)
				}
			}
		})
	}

	filters, selection, err := DecodeFlat(schema, url.Values{})
	require.NoError(t, err)
	assert.Empty(t, filters)
	assert.Equal(t, FieldSelection{}, selection)
}

func TestDecodeFlatBadNumber(t *testing.T) {
	schema := MustSchema(ReportTypeReferral)
	values, _ := url.ParseQuery("minAmount=abc&maxAmount=500&unknownParam=1&referralNotes=yes")

	filters, selection, err := DecodeFlat(schema, values)
	assert.Error(t, err)
	assert.Equal(t, FilterSet{"amountRange": map[string]any{"maxAmount": 500.0}}, filters)
	assert.Equal(t, map[FieldKey]bool{"referralNotes": false}, selection.Fields)
}

func TestBlobRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		filters   FilterSet
		selection FieldSelection
	}{
		{name: "empty", filters: FilterSet{}, selection: FieldSelection{}},
		{
			name:    "nested",
			filters: FilterSet{"sectionId": "sec1", "dateRange": map[string]any{"startDate": "2024-01-01"}, "tags": []any{"a", 2.0}, "deep": map[string]any{"x": map[string]any{"y": true}}},
			selection: FieldSelection{
				Fields:         map[FieldKey]bool{"goalName": true, "goalCompletionDate": false},
				OrderBy:        "targetDate",
				OrderDirection: OrderAsc,
			},
		},
		{name: "defaults", filters: FilterSet{"goalId": "g&1 ?=%"}, selection: DefaultFieldSelection(ReportTypeOutcomeGoals)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := EncodeBlob(tt.filters, tt.selection)
			require.NoError(t, err)
			require.Len(t, q, 2)

			filters, selection, err := DecodeBlob(parse(t, q))
			require.NoError(t, err)
			assert.Equal(t, tt.filters, filters)
			assert.Equal(t, tt.selection, selection)
		})
	}
}

func TestBlobEncodeOutcomeGoalsSection(t *testing.T) {
	q, err := EncodeBlob(FilterSet{"sectionId": "sec1"}, DefaultFieldSelection(ReportTypeOutcomeGoals))
	require.NoError(t, err)

	raw, ok := q.Get(BlobFiltersKey)
	require.True(t, ok)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, map[string]any{"sectionId": "sec1"}, decoded)
}

func TestDecodeBlobMalformed(t *testing.T) {
	values := url.Values{
		BlobFiltersKey:        {"{not json"},
		BlobFieldSelectionKey: {`{"goalName":true}`},
	}
	filters, selection, err := DecodeBlob(values)
	assert.Error(t, err)
	assert.Equal(t, FilterSet{}, filters)
	assert.Equal(t, map[FieldKey]bool{"goalName": true}, selection.Fields)

	filters, selection, err = DecodeBlob(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, FilterSet{}, filters)
	assert.Equal(t, FieldSelection{}, selection)
}

func TestDecodeBlobDoubleEscaped(t *testing.T) {
	values := url.Values{BlobFiltersKey: {url.QueryEscape(`{"sectionId":"sec1"}`)}}
	filters, _, err := DecodeBlob(values)
	require.NoError(t, err)
	assert.Equal(t, FilterSet{"sectionId": "sec1"}, filters)
}

func TestCodecDispatch(t *testing.T) {
	logger := zap.NewNop()
	flat := NewCodec(&config.Config{}, logger)
	canonical := NewCodec(&config.Config{ReportCanonicalBlob: true}, logger)
	schema := MustSchema(ReportTypeReferral)
	filters := FilterSet{"amountRange": map[string]any{"minAmount": 100.0}}
	selection := DefaultFieldSelection(ReportTypeReferral)

	flatQuery, err := flat.Encode(schema, filters, selection)
	require.NoError(t, err)
	_, isBlob := flatQuery.Get(BlobFiltersKey)
	assert.False(t, isBlob)

	blobQuery, err := canonical.Encode(schema, filters, selection)
	require.NoError(t, err)
	_, isBlob = blobQuery.Get(BlobFiltersKey)
	assert.True(t, isBlob)

	// both decoders accept both link styles
	for _, c := range []*Codec{flat, canonical} {
		for _, q := range []Query{flatQuery, blobQuery} {
			gotFilters, gotSelection := c.Decode(schema, parse(t, q))
			assert.Equal(t, filters, gotFilters)
			assert.Equal(t, selection, gotSelection)
		}
	}

	gotFilters, _ := flat.Decode(schema, url.Values{BlobFiltersKey: {"%%%"}})
	assert.Equal(t, FilterSet{}, gotFilters)
}

func TestBlobEncodingMatchesEncodeURIComponent(t *testing.T) {
	q, err := EncodeBlob(FilterSet{"city": "New York", "note": "a+b (x)!*'"}, FieldSelection{})
	require.NoError(t, err)

	encoded := q.Encode()
	assert.NotContains(t, encoded, "+", "spaces must be %20 and plus signs %2B")

	param, _, _ := strings.Cut(encoded, "&")
	name, value, ok := strings.Cut(param, "=")
	require.True(t, ok)
	assert.Equal(t, BlobFiltersKey, name)
	assert.Contains(t, value, "New%20York")
	assert.Contains(t, value, "(x)!*'")

	// decodeURIComponent has no "+" rule, which PathUnescape mirrors
	raw, err := url.PathUnescape(value)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, map[string]any{"city": "New York", "note": "a+b (x)!*'"}, decoded)

	filters, _, err := DecodeBlob(parse(t, q))
	require.NoError(t, err)
	assert.Equal(t, FilterSet{"city": "New York", "note": "a+b (x)!*'"}, filters)
}
