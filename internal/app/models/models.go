package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleOrgAdmin   RoleType = "org-admin"
	RoleStaff      RoleType = "staff"
	RoleSuperAdmin RoleType = "super-admin"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleStudent, RoleOrgAdmin, RoleStaff, RoleSuperAdmin:
		return true
	}
	return false
}

// OrganizationStatus represents the lifecycle status of an organization
type OrganizationStatus string

const (
	OrganizationActive    OrganizationStatus = "active"
	OrganizationInactive  OrganizationStatus = "inactive"
	OrganizationPending   OrganizationStatus = "pending"
	OrganizationSuspended OrganizationStatus = "suspended"
)

// OrganizationType categorizes organizations
type OrganizationType string

const (
	OrgTypeScientificCircle    OrganizationType = "scientific-circle"
	OrgTypeStudentOrganization OrganizationType = "student-organization"
	OrgTypeFaculty             OrganizationType = "faculty"
	OrgTypeDepartment          OrganizationType = "department"
	OrgTypeStudentGovernment   OrganizationType = "student-government"
	OrgTypeOther               OrganizationType = "other"
)

// EventStatus represents the lifecycle status of an event
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// EventCategory categorizes events
type EventCategory string

const (
	CategoryWorkshop    EventCategory = "workshop"
	CategoryConference  EventCategory = "conference"
	CategorySeminar     EventCategory = "seminar"
	CategorySocial      EventCategory = "social"
	CategoryCompetition EventCategory = "competition"
	CategoryMeeting     EventCategory = "meeting"
	CategoryOther       EventCategory = "other"
)

// ParticipationStatus represents a user's relationship to an event
type ParticipationStatus string

const (
	ParticipationGoing      ParticipationStatus = "going"
	ParticipationInterested ParticipationStatus = "interested"
	ParticipationCancelled  ParticipationStatus = "cancelled"
)

// ValidParticipationStatus reports whether the given status is a known participation status.
func ValidParticipationStatus(s ParticipationStatus) bool {
	switch s {
	case ParticipationGoing, ParticipationInterested, ParticipationCancelled:
		return true
	}
	return false
}
