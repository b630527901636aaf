package dto

import (
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

// EventResponse represents event information returned by the API.
// ParticipantsCount is recomputed from participation rows on every read.
type EventResponse struct {
	ID                   int64                 `json:"id"`
	Title                string                `json:"title"`
	Slug                 string                `json:"slug"`
	Description          string                `json:"description"`
	OrganizationID       int64                 `json:"organizationId"`
	Organization         *OrganizationResponse `json:"organization,omitempty"`
	EventDate            time.Time             `json:"eventDate"`
	EndDate              *time.Time            `json:"endDate,omitempty"`
	Location             *string               `json:"location,omitempty"`
	Category             string                `json:"category"`
	Capacity             *int                  `json:"capacity,omitempty"`
	RegistrationRequired bool                  `json:"registrationRequired"`
	Status               string                `json:"status"`
	Featured             bool                  `json:"featured"`
	ParticipantsCount    int                   `json:"participantsCount"`
	DeletedAt            *time.Time            `json:"deletedAt,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// EventListResponse wraps a page of events
type EventListResponse struct {
	Events         []EventResponse `json:"events"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// CreateEventRequest represents event creation data.
// Slug is optional; it is generated from the title when absent.
type CreateEventRequest struct {
	Title                string     `json:"title" binding:"required"`
	Slug                 string     `json:"slug"`
	Description          string     `json:"description" binding:"required"`
	OrganizationID       int64      `json:"organizationId" binding:"required,min=1"`
	EventDate            time.Time  `json:"eventDate" binding:"required"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Location             *string    `json:"location,omitempty"`
	Category             string     `json:"category" binding:"required"`
	Capacity             *int       `json:"capacity,omitempty" binding:"omitempty,min=0"`
	RegistrationRequired bool       `json:"registrationRequired"`
	Featured             bool       `json:"featured"`
}

// UpdateEventRequest represents event update data. Nil fields are left
// unchanged.
type UpdateEventRequest struct {
	Title                *string    `json:"title,omitempty"`
	Slug                 *string    `json:"slug,omitempty"`
	Description          *string    `json:"description,omitempty"`
	EventDate            *time.Time `json:"eventDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Location             *string    `json:"location,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Capacity             *int       `json:"capacity,omitempty" binding:"omitempty,min=0"`
	RegistrationRequired *bool      `json:"registrationRequired,omitempty"`
	Status               *string    `json:"status,omitempty"`
	Featured             *bool      `json:"featured,omitempty"`
}

// EventFilterRequest carries list filters
type EventFilterRequest struct {
	OrganizationID *int64
	Category       *string
	Status         *string
	Featured       *bool
	UpcomingOnly   bool
	Search         *string
	Page           int
	PageSize       int
}

// NewEventResponse maps an event model to its API representation
func NewEventResponse(event *models.Event) EventResponse {
	resp := EventResponse{
		ID:                   event.ID,
		Title:                event.Title,
		Slug:                 event.Slug,
		Description:          event.Description,
		OrganizationID:       event.OrganizationID,
		EventDate:            event.EventDate,
		EndDate:              event.EndDate,
		Location:             event.Location,
		Category:             string(event.Category),
		Capacity:             event.Capacity,
		RegistrationRequired: event.RegistrationRequired,
		Status:               string(event.Status),
		Featured:             event.Featured,
		ParticipantsCount:    event.ParticipantsCount,
		DeletedAt:            event.DeletedAt,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
	if event.Organization != nil {
		org := NewOrganizationResponse(event.Organization)
		resp.Organization = &org
	}
	return resp
}
