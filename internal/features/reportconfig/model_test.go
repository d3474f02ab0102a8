package reportconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultsOff = map[ReportType][]FieldKey{
	ReportTypeCase:         {"caseOtherInfo"},
	ReportTypeCategory:     {"assistanceDescription"},
	ReportTypeEvent:        {"eventDescription"},
	ReportTypeReferral:     {"referralNotes"},
	ReportTypeOutcomeGoals: {"goalCompletionDate"},
	ReportTypeAssistance:   {"assistanceNotes"},
}

func TestDefaultFieldSelection(t *testing.T) {
	for _, rt := range Types() {
		t.Run(string(rt), func(t *testing.T) {
			schema := MustSchema(rt)
			sel := DefaultFieldSelection(rt)

			off := map[FieldKey]bool{}
			for _, k := range defaultsOff[rt] {
				off[k] = true
			}

			require.Len(t, sel.Fields, len(schema.Fields))
			for _, f := range schema.Fields {
				assert.Equal(t, !off[f.Key], sel.Fields[f.Key], "field %s", f.Key)
			}
			assert.Equal(t, schema.DefaultOrderBy, sel.OrderBy)
			assert.Equal(t, OrderDesc, sel.OrderDirection)
		})
	}
}

func TestCaseDefaults(t *testing.T) {
	sel := DefaultFieldSelection(ReportTypeCase)
	assert.False(t, sel.Fields["caseOtherInfo"])
	assert.True(t, sel.Fields["caseFullName"])
	assert.Equal(t, "createdAt", sel.OrderBy)

	for _, k := range []FieldKey{"caseFullName", "caseEmail", "caseNumber", "summaryTotalCases"} {
		assert.True(t, IsAlwaysEnabled(ReportTypeCase, k), "%s", k)
	}
	assert.False(t, IsAlwaysEnabled(ReportTypeCase, "casePhone"))
	assert.False(t, IsAlwaysEnabled("nope", "caseFullName"))
}

func TestToggleFieldAlwaysEnabledIsNoop(t *testing.T) {
	for _, rt := range Types() {
		schema := MustSchema(rt)
		for _, f := range schema.Fields {
			if !f.AlwaysEnabled {
				continue
			}
			start := DefaultFieldSelection(rt)
			got := ToggleField(rt, start, f.Key)
			assert.True(t, got.Fields[f.Key], "%s/%s", rt, f.Key)
			assert.Equal(t, start, got)

			// starting from an arbitrary selection
			odd := FieldSelection{Fields: map[FieldKey]bool{f.Key: true, "unrelated": false}}
			assert.Equal(t, odd, ToggleField(rt, odd, f.Key))
		}
	}
}

func TestToggleFieldFlips(t *testing.T) {
	start := DefaultFieldSelection(ReportTypeCase)

	got := ToggleField(ReportTypeCase, start, "caseOtherInfo")
	assert.True(t, got.Fields["caseOtherInfo"])
	assert.False(t, start.Fields["caseOtherInfo"], "input must not be mutated")

	got = ToggleField(ReportTypeCase, got, "caseOtherInfo")
	assert.False(t, got.Fields["caseOtherInfo"])

	assert.Equal(t, start, ToggleField(ReportTypeCase, start, "notAField"))
}

func TestSetOrder(t *testing.T) {
	start := DefaultFieldSelection(ReportTypeEvent)

	got, err := SetOrder(ReportTypeEvent, start, "name", OrderAsc)
	require.NoError(t, err)
	assert.Equal(t, "name", got.OrderBy)
	assert.Equal(t, OrderAsc, got.OrderDirection)

	_, err = SetOrder(ReportTypeEvent, start, "name", "sideways")
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = SetOrder(ReportTypeEvent, start, "password", OrderAsc)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestFieldSelectionJSON(t *testing.T) {
	sel := FieldSelection{
		Fields:         map[FieldKey]bool{"goalName": true, "goalCompletionDate": false},
		OrderBy:        "createdAt",
		OrderDirection: OrderDesc,
	}
	raw, err := json.Marshal(sel)
	require.NoError(t, err)
	assert.JSONEq(t, `{"goalName":true,"goalCompletionDate":false,"orderBy":"createdAt","orderDirection":"desc"}`, string(raw))

	var back FieldSelection
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, sel, back)

	var partial FieldSelection
	require.NoError(t, json.Unmarshal([]byte(`{"goalName":"yes","orderBy":"x"}`), &partial))
	assert.Nil(t, partial.Fields)
	assert.Equal(t, "x", partial.OrderBy)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("weather")
	assert.ErrorIs(t, err, ErrUnknownReportType)
	assert.Panics(t, func() { MustSchema("weather") })
}

func TestSchemaReferenceLists(t *testing.T) {
	event := MustSchema(ReportTypeEvent)
	assert.ElementsMatch(t,
		[]string{"event-types", "event-locations", "event-activities", "agents"},
		toStrings(event.ReferenceLists()),
	)
	assert.Equal(t, []string{"Dates", "Event", "Assignment"}, event.Sections())
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
