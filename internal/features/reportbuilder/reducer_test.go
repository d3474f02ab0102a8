package reportbuilder

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"go-crossroads/internal/config"
	"go-crossroads/internal/features/reportconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCodec() *reportconfig.Codec {
	return reportconfig.NewCodec(&config.Config{}, zap.NewNop())
}

// run applies actions in order and fails the test on the first error.
func run(t *testing.T, state State, actions ...Action) State {
	t.Helper()
	codec := newCodec()
	for _, a := range actions {
		var err error
		state, err = Reduce(codec, state, a)
		require.NoError(t, err, "action %s", a.Type)
	}
	return state
}

func open(t *testing.T, rt reportconfig.ReportType) State {
	t.Helper()
	state, err := NewState(rt)
	require.NoError(t, err)
	return state
}

func TestScenarioCaseDefaults(t *testing.T) {
	state := run(t, open(t, reportconfig.ReportTypeCase),
		Action{Type: ActionNext},
		Action{Type: ActionGenerate},
	)

	require.Equal(t, StepClosed, state.Step)
	require.NotNil(t, state.Result)
	assert.Equal(t, "/reports/case", state.Result.Path)
	assert.True(t, strings.HasPrefix(state.Result.URL, "/reports/case?"))

	q := state.Result.Query
	assert.Contains(t, q, "orderBy=createdAt&orderDirection=desc")
	assert.Contains(t, q, "caseFullName=true")
	assert.Contains(t, q, "caseOtherInfo=false")
	assert.NotContains(t, q, "caseOtherInfo=true")
}

func TestScenarioReferralAmounts(t *testing.T) {
	state := run(t, open(t, reportconfig.ReportTypeReferral),
		Action{Type: ActionSetFilter, Key: "amountRange", Sub: "minAmount", Value: 100.0},
		Action{Type: ActionSetFilter, Key: "amountRange", Sub: "maxAmount", Value: "500"},
		Action{Type: ActionNext},
		Action{Type: ActionGenerate},
	)

	require.NotNil(t, state.Result)
	assert.Contains(t, state.Result.Query, "minAmount=100&maxAmount=500")
}

func TestScenarioOutcomeGoalsSection(t *testing.T) {
	state := run(t, open(t, reportconfig.ReportTypeOutcomeGoals),
		Action{Type: ActionSetFilter, Key: "sectionId", Value: "sec1"},
		Action{Type: ActionNext},
		Action{Type: ActionGenerate},
	)

	require.NotNil(t, state.Result)
	values, err := url.ParseQuery(state.Result.Query)
	require.NoError(t, err)

	var filters map[string]any
	require.NoError(t, json.Unmarshal([]byte(values.Get("filters")), &filters))
	assert.Equal(t, map[string]any{"sectionId": "sec1"}, filters)
	assert.NotEmpty(t, values.Get("fieldSelection"))
}

func TestBackKeepsEverything(t *testing.T) {
	state := run(t, open(t, reportconfig.ReportTypeCategory),
		Action{Type: ActionSetFilter, Key: "categoryId", Value: "c1"},
		Action{Type: ActionToggleSection, Key: "Amounts"},
		Action{Type: ActionNext},
		Action{Type: ActionToggleField, Key: "assistanceDescription"},
		Action{Type: ActionSetOrder, OrderBy: "amount", Direction: reportconfig.OrderAsc},
		Action{Type: ActionBack},
	)

	assert.Equal(t, StepFilters, state.Step)
	assert.Equal(t, reportconfig.FilterSet{"categoryId": "c1"}, state.Filters)
	assert.True(t, state.FieldSelection.Fields["assistanceDescription"])
	assert.Equal(t, "amount", state.FieldSelection.OrderBy)
	assert.True(t, state.ExpandedSections["Amounts"])
}

func TestInvalidTransitions(t *testing.T) {
	filters := open(t, reportconfig.ReportTypeCase)
	selection := run(t, filters, Action{Type: ActionNext})
	closed := run(t, selection, Action{Type: ActionCancel})

	tests := []struct {
		name   string
		state  State
		action Action
	}{
		{"generate from filters", filters, Action{Type: ActionGenerate}},
		{"back from filters", filters, Action{Type: ActionBack}},
		{"toggle field from filters", filters, Action{Type: ActionToggleField, Key: "casePhone"}},
		{"next from field selection", selection, Action{Type: ActionNext}},
		{"set filter from field selection", selection, Action{Type: ActionSetFilter, Key: "city", Value: "Tulsa"}},
		{"next after close", closed, Action{Type: ActionNext}},
		{"generate after close", closed, Action{Type: ActionGenerate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(newCodec(), tt.state, tt.action)
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.state, got)
		})
	}
}

func TestRejectedEditsKeepState(t *testing.T) {
	state := run(t, open(t, reportconfig.ReportTypeReferral),
		Action{Type: ActionSetFilter, Key: "amountRange", Sub: "minAmount", Value: 600.0},
	)

	tests := []struct {
		name    string
		action  Action
		wantErr error
	}{
		{"inverted range", Action{Type: ActionSetFilter, Key: "amountRange", Sub: "maxAmount", Value: 500.0}, reportconfig.ErrInvertedRange},
		{"unknown filter", Action{Type: ActionSetFilter, Key: "shoeSize", Value: "9"}, reportconfig.ErrUnknownFilter},
		{"unknown section", Action{Type: ActionToggleSection, Key: "Weather"}, ErrUnknownSection},
		{"unknown action", Action{Type: "explode"}, ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(newCodec(), state, tt.action)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, state, got)
		})
	}
}

func TestCancelDiscards(t *testing.T) {
	for _, step := range []Action{{Type: ActionCancel}, {Type: ActionNext}} {
		state := run(t, open(t, reportconfig.ReportTypeEvent),
			Action{Type: ActionSetFilter, Key: "eventTypeId", Value: "t1"},
			step,
		)
		closed := run(t, state, Action{Type: ActionCancel})
		assert.Equal(t, StepClosed, closed.Step)
		assert.Nil(t, closed.Result)
		assert.Nil(t, closed.Filters)
	}
}

func TestAlwaysEnabledSurvivesTampering(t *testing.T) {
	state := open(t, reportconfig.ReportTypeCase)
	state.Step = StepFieldSelection
	state.FieldSelection.Fields["caseFullName"] = false

	state = run(t, state, Action{Type: ActionToggleField, Key: "caseFullName"})
	assert.True(t, state.FieldSelection.Fields["caseFullName"])

	state = run(t, state, Action{Type: ActionGenerate})
	assert.Contains(t, state.Result.Query, "caseFullName=true")
}

func TestMissingSelectionFallsBackToDefaults(t *testing.T) {
	state := run(t, State{ReportType: reportconfig.ReportTypeAssistance}, Action{Type: ActionNext})
	assert.Equal(t, reportconfig.DefaultFieldSelection(reportconfig.ReportTypeAssistance), state.FieldSelection)
	assert.Equal(t, reportconfig.FilterSet{}, state.Filters)
}

func TestVisibleGroups(t *testing.T) {
	state := run(t, open(t, reportconfig.ReportTypeEvent), Action{Type: ActionNext})
	assert.Equal(t, Visibility{Summary: true, Records: true}, VisibleGroups(state))

	state = run(t, state, Action{Type: ActionToggleField, Key: "includeEventSummary"})
	assert.Equal(t, Visibility{Summary: false, Records: true}, VisibleGroups(state))

	state = run(t, state, Action{Type: ActionToggleField, Key: "includeEventRecords"})
	assert.Equal(t, Visibility{}, VisibleGroups(state))
}

func TestCanonicalBlobEncoding(t *testing.T) {
	codec := reportconfig.NewCodec(&config.Config{ReportCanonicalBlob: true}, zap.NewNop())
	state := open(t, reportconfig.ReportTypeCase)

	state, err := Reduce(codec, state, Action{Type: ActionNext})
	require.NoError(t, err)
	state, err = Reduce(codec, state, Action{Type: ActionGenerate})
	require.NoError(t, err)

	values, err := url.ParseQuery(state.Result.Query)
	require.NoError(t, err)
	assert.Len(t, values, 2)
	assert.JSONEq(t, `{}`, values.Get("filters"))
}

func TestBuildForm(t *testing.T) {
	schema := reportconfig.MustSchema(reportconfig.ReportTypeReferral)
	form := BuildForm(schema, newCodec())

	assert.Equal(t, reportconfig.EncodingFlat, form.Encoding)
	assert.Equal(t, schema.Sections(), form.Sections)
	require.Len(t, form.Filters, len(schema.Filters))
	assert.Equal(t, FilterView{
		Key:     "amountRange",
		Label:   "Amount",
		Kind:    "amountRange",
		Section: "Amounts",
		Bounds:  []string{"minAmount", "maxAmount"},
	}, form.Filters[2])
	require.Len(t, form.Fields, len(schema.Fields))
}
