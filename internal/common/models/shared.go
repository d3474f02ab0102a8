package models

type ContextKey string

const (
	SessionKey   ContextKey = "session"
	RequestIDKey ContextKey = "request_id"
)

// Session carries the identity the external auth collaborator issued.
// It is passed explicitly to every upstream call.
type Session struct {
	UserID         string `json:"user_id"`
	ActiveLocation string `json:"active_location"`
	Token          string `json:"-"` // forwarded to the upstream API as a bearer token
}

func (s Session) IsZero() bool {
	return s.UserID == "" && s.ActiveLocation == ""
}

// ReferenceKind names a list endpoint of the upstream API.
type ReferenceKind string

const (
	ReferenceUnits            ReferenceKind = "units"
	ReferenceCategories       ReferenceKind = "categories"
	ReferenceRequestStatuses  ReferenceKind = "request-statuses"
	ReferenceServices         ReferenceKind = "services"
	ReferenceEventTypes       ReferenceKind = "event-types"
	ReferenceEventLocations   ReferenceKind = "event-locations"
	ReferenceEventActivities  ReferenceKind = "event-activities"
	ReferenceAgents           ReferenceKind = "agents"
	ReferenceCategorySections ReferenceKind = "category-sections"
	ReferenceOutcomeGoals     ReferenceKind = "outcome-goals"
	ReferenceOutcomeSections  ReferenceKind = "outcome-sections"
	ReferenceOutcomeStatuses  ReferenceKind = "outcome-statuses"
	ReferenceCountries        ReferenceKind = "countries"
)

var ReferenceKinds = []ReferenceKind{
	ReferenceUnits,
	ReferenceCategories,
	ReferenceRequestStatuses,
	ReferenceServices,
	ReferenceEventTypes,
	ReferenceEventLocations,
	ReferenceEventActivities,
	ReferenceAgents,
	ReferenceCategorySections,
	ReferenceOutcomeGoals,
	ReferenceOutcomeSections,
	ReferenceOutcomeStatuses,
	ReferenceCountries,
}

func IsReferenceKind(kind string) bool {
	for _, k := range ReferenceKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// ReferenceItem is one option of a dropdown populated from the upstream API.
type ReferenceItem struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	SectionID   string `json:"sectionId,omitempty"`
	SectionName string `json:"sectionName,omitempty"`
}

// Notification is a transient, non-blocking message for the UI.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Source  string `json:"source,omitempty"`
}
