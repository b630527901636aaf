package models

// OrganizationFilter narrows organization listings at the repository level
type OrganizationFilter struct {
	Type   *OrganizationType
	Search *string
}

// EventFilter narrows event listings at the repository level
type EventFilter struct {
	OrganizationID *int64
	Category       *EventCategory
	Status         *EventStatus
	Featured       *bool
	UpcomingOnly   bool
	Search         *string
}
