package reportbuilder

import (
	"errors"

	"go-crossroads/internal/common/models"
	"go-crossroads/internal/features/reference"
	"go-crossroads/internal/features/reportconfig"
)

type Step string

const (
	StepFilters        Step = "filters"
	StepFieldSelection Step = "fieldSelection"
	StepClosed         Step = "closed"
)

var (
	ErrInvalidTransition  = errors.New("invalid builder transition")
	ErrUnknownAction      = errors.New("unknown builder action")
	ErrUnknownSection     = errors.New("unknown filter section")
	ErrReportTypeMismatch = errors.New("state belongs to another report type")
)

// State is the whole builder wizard. It travels with every request, the
// server keeps none of it.
type State struct {
	ReportType       reportconfig.ReportType     `json:"reportType"`
	Step             Step                        `json:"step"`
	Filters          reportconfig.FilterSet      `json:"filters"`
	FieldSelection   reportconfig.FieldSelection `json:"fieldSelection"`
	ExpandedSections map[string]bool             `json:"expandedSections"`
	Result           *GeneratedReport            `json:"result,omitempty"`
}

// GeneratedReport is where the viewer should navigate after Generate.
type GeneratedReport struct {
	Path  string `json:"path"`
	Query string `json:"query"`
	URL   string `json:"url"`
}

type ActionType string

const (
	ActionSetFilter     ActionType = "setFilter"
	ActionClearFilter   ActionType = "clearFilter"
	ActionToggleField   ActionType = "toggleField"
	ActionSetOrder      ActionType = "setOrder"
	ActionToggleSection ActionType = "toggleSection"
	ActionNext          ActionType = "next"
	ActionBack          ActionType = "back"
	ActionGenerate      ActionType = "generate"
	ActionCancel        ActionType = "cancel"
)

// Action is one user event. Key names the filter, field or section the
// action targets; Sub names a range bound.
type Action struct {
	Type      ActionType                  `json:"type"`
	Key       string                      `json:"key,omitempty"`
	Sub       string                      `json:"sub,omitempty"`
	Value     any                         `json:"value,omitempty"`
	OrderBy   string                      `json:"orderBy,omitempty"`
	Direction reportconfig.OrderDirection `json:"direction,omitempty"`
}

// Visibility says which field-selection checklists render.
type Visibility struct {
	Summary bool `json:"summary"`
	Records bool `json:"records"`
}

type FilterView struct {
	Key       string               `json:"key"`
	Label     string               `json:"label"`
	Kind      string               `json:"kind"`
	Section   string               `json:"section"`
	Reference models.ReferenceKind `json:"reference,omitempty"`
	Bounds    []string             `json:"bounds,omitempty"`
}

type FieldView struct {
	Key           reportconfig.FieldKey   `json:"key"`
	Label         string                  `json:"label"`
	Group         reportconfig.FieldGroup `json:"group"`
	AlwaysEnabled bool                    `json:"alwaysEnabled"`
}

// Form describes the wizard's controls for one report type.
type Form struct {
	ReportType reportconfig.ReportType `json:"reportType"`
	Title      string                  `json:"title"`
	Encoding   reportconfig.Encoding   `json:"encoding"`
	Sections   []string                `json:"sections"`
	Filters    []FilterView            `json:"filters"`
	Fields     []FieldView             `json:"fields"`
	SortFields []string                `json:"sortFields"`
}

type OpenResult struct {
	State         State                                   `json:"state"`
	Form          Form                                    `json:"form"`
	Visibility    Visibility                              `json:"visibility"`
	References    map[models.ReferenceKind]reference.List `json:"references"`
	Notifications []models.Notification                   `json:"notifications"`
}

type DispatchResult struct {
	State      State      `json:"state"`
	Visibility Visibility `json:"visibility"`
}
