package reportbuilder

import (
	"fmt"

	"go-crossroads/internal/features/reportconfig"
)

// Encoder turns a finished request into the viewer query.
type Encoder interface {
	Encode(schema *reportconfig.Schema, filters reportconfig.FilterSet, selection reportconfig.FieldSelection) (reportconfig.Query, error)
	EncodingFor(schema *reportconfig.Schema) reportconfig.Encoding
}

// NewState is the state right after the wizard opens.
func NewState(reportType reportconfig.ReportType) (State, error) {
	if _, err := reportconfig.Lookup(reportType); err != nil {
		return State{}, err
	}
	return State{
		ReportType:       reportType,
		Step:             StepFilters,
		Filters:          reportconfig.FilterSet{},
		FieldSelection:   reportconfig.DefaultFieldSelection(reportType),
		ExpandedSections: map[string]bool{},
	}, nil
}

// Reduce applies one action. It never mutates state; on error the returned
// state is the input unchanged.
func Reduce(enc Encoder, state State, action Action) (State, error) {
	schema, err := reportconfig.Lookup(state.ReportType)
	if err != nil {
		return state, err
	}
	next := normalize(state)

	switch action.Type {
	case ActionSetFilter, ActionClearFilter, ActionToggleSection:
		if next.Step != StepFilters {
			return state, transitionError(action, next.Step)
		}
	case ActionToggleField, ActionSetOrder, ActionGenerate, ActionBack:
		if next.Step != StepFieldSelection {
			return state, transitionError(action, next.Step)
		}
	case ActionNext:
		if next.Step != StepFilters {
			return state, transitionError(action, next.Step)
		}
	case ActionCancel:
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}

	switch action.Type {
	case ActionSetFilter:
		filters, err := reportconfig.SetFilter(schema, next.Filters, action.Key, action.Sub, action.Value)
		if err != nil {
			return state, err
		}
		next.Filters = filters

	case ActionClearFilter:
		filters, err := reportconfig.ClearFilter(schema, next.Filters, action.Key)
		if err != nil {
			return state, err
		}
		next.Filters = filters

	case ActionToggleSection:
		if !hasSection(schema, action.Key) {
			return state, fmt.Errorf("%w: %q", ErrUnknownSection, action.Key)
		}
		expanded := make(map[string]bool, len(next.ExpandedSections)+1)
		for k, v := range next.ExpandedSections {
			expanded[k] = v
		}
		expanded[action.Key] = !expanded[action.Key]
		next.ExpandedSections = expanded

	case ActionToggleField:
		next.FieldSelection = reportconfig.ToggleField(next.ReportType, next.FieldSelection, reportconfig.FieldKey(action.Key))

	case ActionSetOrder:
		selection, err := reportconfig.SetOrder(next.ReportType, next.FieldSelection, action.OrderBy, action.Direction)
		if err != nil {
			return state, err
		}
		next.FieldSelection = selection

	case ActionNext:
		next.Step = StepFieldSelection

	case ActionBack:
		next.Step = StepFilters

	case ActionGenerate:
		q, err := enc.Encode(schema, next.Filters, next.FieldSelection)
		if err != nil {
			return state, fmt.Errorf("encode report request: %w", err)
		}
		next.Result = &GeneratedReport{
			Path:  schema.ViewerPath,
			Query: q.Encode(),
			URL:   reportconfig.ViewerURL(schema, q),
		}
		next.Step = StepClosed

	case ActionCancel:
		// the next open starts fresh
		next = State{ReportType: next.ReportType, Step: StepClosed}
	}

	return next, nil
}

// VisibleGroups reports which checklists of the field-selection step render.
// The section toggles themselves are always shown.
func VisibleGroups(state State) Visibility {
	schema, err := reportconfig.Lookup(state.ReportType)
	if err != nil {
		return Visibility{}
	}
	return Visibility{
		Summary: state.FieldSelection.Enabled(schema.IncludeSummary),
		Records: state.FieldSelection.Enabled(schema.IncludeRecords),
	}
}

// normalize copies state and repairs what a client may have dropped: a
// missing step or selection falls back to the opening defaults and
// always-enabled fields are forced on.
func normalize(state State) State {
	next := state
	next.Result = nil
	if next.Step == "" {
		next.Step = StepFilters
	}
	if next.Filters == nil {
		next.Filters = reportconfig.FilterSet{}
	} else {
		next.Filters = next.Filters.Clone()
	}
	if next.FieldSelection.Fields == nil {
		defaults := reportconfig.DefaultFieldSelection(next.ReportType)
		if next.FieldSelection.OrderBy != "" {
			defaults.OrderBy = next.FieldSelection.OrderBy
		}
		if next.FieldSelection.OrderDirection != "" {
			defaults.OrderDirection = next.FieldSelection.OrderDirection
		}
		next.FieldSelection = defaults
	}
	next.FieldSelection = reportconfig.EnforceAlwaysEnabled(next.ReportType, next.FieldSelection)
	if next.ExpandedSections == nil {
		next.ExpandedSections = map[string]bool{}
	}
	return next
}

func hasSection(schema *reportconfig.Schema, name string) bool {
	for _, s := range schema.Sections() {
		if s == name {
			return true
		}
	}
	return false
}

func transitionError(action Action, step Step) error {
	return fmt.Errorf("%w: %s during %s", ErrInvalidTransition, action.Type, step)
}
