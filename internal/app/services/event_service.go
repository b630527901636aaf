package services

import (
	"context"
	"time"

	appauth "github.com/mkowalczyk/campushub/internal/app/auth"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
	"github.com/mkowalczyk/campushub/internal/pkg/slug"
)

// EventStore is the event persistence surface the service needs
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetAll(ctx context.Context, filter *models.EventFilter, includeDeleted bool, offset uint64, limit int) ([]*models.Event, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, event *models.Event) error
	SoftDelete(ctx context.Context, id, deletedBy int64) error
}

// ParticipantCounter recomputes derived participant counts
type ParticipantCounter interface {
	CountGoing(ctx context.Context, eventID int64) (int, error)
}

// EventService handles event CRUD
type EventService struct {
	eventStore EventStore
	orgStore   OrganizationStore
	counter    ParticipantCounter
}

// NewEventService creates a new EventService
func NewEventService(eventStore EventStore, orgStore OrganizationStore, counter ParticipantCounter) *EventService {
	return &EventService{
		eventStore: eventStore,
		orgStore:   orgStore,
		counter:    counter,
	}
}

func validEventCategory(c models.EventCategory) bool {
	switch c {
	case models.CategoryWorkshop, models.CategoryConference, models.CategorySeminar,
		models.CategorySocial, models.CategoryCompetition, models.CategoryMeeting,
		models.CategoryOther:
		return true
	}
	return false
}

func validEventStatus(s models.EventStatus) bool {
	switch s {
	case models.EventUpcoming, models.EventOngoing, models.EventCompleted, models.EventCancelled:
		return true
	}
	return false
}

// CreateEvent creates a new event for an organization. The event date must
// not be in the past; existing events are allowed to age past their date.
func (s *EventService) CreateEvent(ctx context.Context, caller *models.User, req *dto.CreateEventRequest) (*models.Event, error) {
	if appauth.Evaluate(appauth.EntityEvent, appauth.OpCreate, caller.RoleType) == appauth.Deny {
		return nil, apperrors.NewForbiddenError("you are not allowed to create events")
	}

	category := models.EventCategory(req.Category)
	if !validEventCategory(category) {
		return nil, apperrors.NewValidationError("unknown event category: " + req.Category)
	}
	if req.EventDate.Before(time.Now()) {
		return nil, apperrors.NewValidationError("event date must not be in the past")
	}
	if req.EndDate != nil && !req.EndDate.After(req.EventDate) {
		return nil, apperrors.NewValidationError("end date must be after the event date")
	}

	org, err := s.orgStore.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !org.VisibleTo(caller.RoleType) {
		return nil, apperrors.ErrOrganizationNotFound
	}

	base := req.Slug
	if base == "" {
		base = req.Title
	}
	uniqueSlug, err := slug.Unique(ctx, slug.Slugify(base), 0, s.eventStore.SlugExists)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:                req.Title,
		Slug:                 uniqueSlug,
		Description:          req.Description,
		OrganizationID:       req.OrganizationID,
		EventDate:            req.EventDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		Category:             category,
		Capacity:             req.Capacity,
		RegistrationRequired: req.RegistrationRequired,
		Status:               models.EventUpcoming,
		Featured:             req.Featured,
	}

	if err := s.eventStore.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("eventId", event.ID).Str("slug", event.Slug).Int64("createdBy", caller.ID).Msg("Event created")
	return event, nil
}

// GetEvent retrieves an event by ID with its participant count recomputed.
// Soft-deleted events are only visible to super-admins.
func (s *EventService) GetEvent(ctx context.Context, callerRole models.RoleType, id int64) (*models.Event, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.finishRead(ctx, callerRole, event)
}

// GetEventBySlug retrieves an event by slug with its participant count recomputed
func (s *EventService) GetEventBySlug(ctx context.Context, callerRole models.RoleType, eventSlug string) (*models.Event, error) {
	event, err := s.eventStore.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	return s.finishRead(ctx, callerRole, event)
}

func (s *EventService) finishRead(ctx context.Context, callerRole models.RoleType, event *models.Event) (*models.Event, error) {
	if event.IsDeleted() && appauth.Evaluate(appauth.EntityEvent, appauth.OpRead, callerRole) != appauth.AllowAll {
		return nil, apperrors.ErrEventNotFound
	}

	count, err := s.counter.CountGoing(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.ParticipantsCount = count
	return event, nil
}

// ListEvents retrieves a page of events with participant counts recomputed
func (s *EventService) ListEvents(ctx context.Context, callerRole models.RoleType, req *dto.EventFilterRequest, offset uint64, limit int) ([]*models.Event, int64, error) {
	filter := &models.EventFilter{
		OrganizationID: req.OrganizationID,
		Featured:       req.Featured,
		UpcomingOnly:   req.UpcomingOnly,
		Search:         req.Search,
	}
	if req.Category != nil {
		c := models.EventCategory(*req.Category)
		if !validEventCategory(c) {
			return nil, 0, apperrors.NewValidationError("unknown event category: " + *req.Category)
		}
		filter.Category = &c
	}
	if req.Status != nil {
		st := models.EventStatus(*req.Status)
		if !validEventStatus(st) {
			return nil, 0, apperrors.NewValidationError("unknown event status: " + *req.Status)
		}
		filter.Status = &st
	}

	includeDeleted := appauth.Evaluate(appauth.EntityEvent, appauth.OpRead, callerRole) == appauth.AllowAll
	events, total, err := s.eventStore.GetAll(ctx, filter, includeDeleted, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	for _, event := range events {
		count, err := s.counter.CountGoing(ctx, event.ID)
		if err != nil {
			return nil, 0, err
		}
		event.ParticipantsCount = count
	}
	return events, total, nil
}

// UpdateEvent applies a partial update. Super-admins may update any event;
// org-admins only events of their own organization. The event date check
// applies to creation only, so past-dated events stay editable.
func (s *EventService) UpdateEvent(ctx context.Context, caller *models.User, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.IsDeleted() && !caller.IsSuperAdmin() {
		return nil, apperrors.ErrEventNotFound
	}
	if !appauth.CanUpdateEvent(caller, event) {
		return nil, apperrors.NewForbiddenError("you can only update events of your own organization")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if event.EndDate != nil && !event.EndDate.After(event.EventDate) {
		return nil, apperrors.NewValidationError("end date must be after the event date")
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.Category != nil {
		c := models.EventCategory(*req.Category)
		if !validEventCategory(c) {
			return nil, apperrors.NewValidationError("unknown event category: " + *req.Category)
		}
		event.Category = c
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.RegistrationRequired != nil {
		event.RegistrationRequired = *req.RegistrationRequired
	}
	if req.Status != nil {
		st := models.EventStatus(*req.Status)
		if !validEventStatus(st) {
			return nil, apperrors.NewValidationError("unknown event status: " + *req.Status)
		}
		event.Status = st
	}
	if req.Featured != nil {
		event.Featured = *req.Featured
	}
	if req.Slug != nil && *req.Slug != event.Slug {
		uniqueSlug, err := slug.Unique(ctx, slug.Slugify(*req.Slug), event.ID, s.eventStore.SlugExists)
		if err != nil {
			return nil, err
		}
		event.Slug = uniqueSlug
	}

	if err := s.eventStore.Update(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("eventId", event.ID).Int64("updatedBy", caller.ID).Msg("Event updated")
	return event, nil
}

// DeleteEvent soft-deletes an event. Super-admin only; participation rows
// are untouched.
func (s *EventService) DeleteEvent(ctx context.Context, caller *models.User, id int64) error {
	if appauth.Evaluate(appauth.EntityEvent, appauth.OpDelete, caller.RoleType) != appauth.Allow {
		return apperrors.NewForbiddenError("only super-admins may delete events")
	}

	if err := s.eventStore.SoftDelete(ctx, id, caller.ID); err != nil {
		return err
	}

	logger.Info().Int64("eventId", id).Int64("deletedBy", caller.ID).Msg("Event soft-deleted")
	return nil
}
