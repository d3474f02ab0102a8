package reference

import (
	"errors"

	"go-crossroads/internal/common/models"
)

var ErrUnknownKind = errors.New("unknown reference list")

// List is one dropdown's options. Unavailable marks a failed fetch: the UI
// shows only its "All ..." option and the user may retry by reopening.
type List struct {
	Kind        models.ReferenceKind   `json:"kind"`
	Items       []models.ReferenceItem `json:"items"`
	Unavailable bool                   `json:"unavailable,omitempty"`
}

var labels = map[models.ReferenceKind]string{
	models.ReferenceUnits:            "units",
	models.ReferenceCategories:       "categories",
	models.ReferenceRequestStatuses:  "request statuses",
	models.ReferenceServices:         "services",
	models.ReferenceEventTypes:       "event types",
	models.ReferenceEventLocations:   "event locations",
	models.ReferenceEventActivities:  "event activities",
	models.ReferenceAgents:           "users",
	models.ReferenceCategorySections: "category sections",
	models.ReferenceOutcomeGoals:     "outcome goals",
	models.ReferenceOutcomeSections:  "outcome sections",
	models.ReferenceOutcomeStatuses:  "outcome statuses",
	models.ReferenceCountries:        "countries",
}

func Label(kind models.ReferenceKind) string {
	if l, ok := labels[kind]; ok {
		return l
	}
	return string(kind)
}
