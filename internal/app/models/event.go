package models

import "time"

// Event represents a campus event published by an organization
type Event struct {
	ID                   int64         `json:"id" db:"id"`
	Title                string        `json:"title" db:"title"`
	Slug                 string        `json:"slug" db:"slug"`
	Description          string        `json:"description" db:"description"`
	OrganizationID       int64         `json:"organizationId" db:"organization_id"`
	EventDate            time.Time     `json:"eventDate" db:"event_date"`
	EndDate              *time.Time    `json:"endDate,omitempty" db:"end_date"`
	Location             *string       `json:"location,omitempty" db:"location"`
	Category             EventCategory `json:"category" db:"category"`
	Capacity             *int          `json:"capacity,omitempty" db:"capacity"`
	RegistrationRequired bool          `json:"registrationRequired" db:"registration_required"`
	Status               EventStatus   `json:"status" db:"status"`
	Featured             bool          `json:"featured" db:"featured"`
	DeletedAt            *time.Time    `json:"deletedAt,omitempty" db:"deleted_at"`
	DeletedBy            *int64        `json:"deletedBy,omitempty" db:"deleted_by"`
	CreatedAt            time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time     `json:"updatedAt" db:"updated_at"`

	// ParticipantsCount is derived from event_participations rows with status
	// 'going'. It is recomputed on read and never stored.
	ParticipantsCount int `json:"participantsCount" db:"-"`

	// Related entities
	Organization *Organization `json:"organization,omitempty"`
}

// IsDeleted reports whether the event has been soft-deleted.
func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Joinable reports whether the event currently accepts joins.
func (e *Event) Joinable() bool {
	return !e.IsDeleted() && e.Status != EventCancelled
}
