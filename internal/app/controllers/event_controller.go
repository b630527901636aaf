package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/app/services"
	"github.com/mkowalczyk/campushub/internal/middleware"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// EventController handles event operations
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// CreateEvent creates a new event
// @Summary Create an event
// @Description Any authenticated user may create an event for a visible organization. The event date must not be in the past.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Created event"
// @Failure 400 {object} dto.ErrorResponse "Invalid event data"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// GetEvent retrieves an event by ID
// @Summary Get an event
// @Description The participant count is recomputed from participation rows on every read.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), callerRole(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// GetEventBySlug retrieves an event by slug
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/slug/{slug} [get]
func (c *EventController) GetEventBySlug(ctx *gin.Context) {
	eventSlug := ctx.Param("slug")
	if eventSlug == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid slug parameter"))
		return
	}

	event, err := c.eventService.GetEventBySlug(ctx.Request.Context(), callerRole(ctx), eventSlug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// ListEvents retrieves a page of events
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param organizationId query int false "Filter by organization"
// @Param category query string false "Category filter"
// @Param status query string false "Status filter"
// @Param featured query bool false "Featured only"
// @Param upcoming query bool false "Upcoming only"
// @Param search query string false "Title and description search"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	req := &dto.EventFilterRequest{}
	if v := ctx.Query("organizationId"); v != "" {
		orgID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || orgID <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid organizationId parameter"))
			return
		}
		req.OrganizationID = &orgID
	}
	if v := ctx.Query("category"); v != "" {
		req.Category = &v
	}
	if v := ctx.Query("status"); v != "" {
		req.Status = &v
	}
	if v := ctx.Query("featured"); v != "" {
		featured := v == "true"
		req.Featured = &featured
	}
	req.UpcomingOnly = ctx.Query("upcoming") == "true"
	if v := ctx.Query("search"); v != "" {
		req.Search = &v
	}

	events, total, err := c.eventService.ListEvents(ctx.Request.Context(), callerRole(ctx), req, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, dto.NewEventResponse(event))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EventListResponse{
		Events:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateEvent applies a partial update
// @Summary Update an event
// @Description Super-admins may update any event; org-admins only events of their own organization.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Updated event"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to update this event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// DeleteEvent soft-deletes an event
// @Summary Delete an event
// @Description Super-admin only. Participation rows are untouched.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 403 {object} dto.ErrorResponse "Super-admin role required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event deleted"}))
}
