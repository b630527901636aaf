package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/app/services"
	"github.com/mkowalczyk/campushub/internal/middleware"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ParticipationController handles joining and leaving events
type ParticipationController struct {
	participationService *services.ParticipationService
	logger               zerolog.Logger
}

// NewParticipationController creates a new ParticipationController
func NewParticipationController(participationService *services.ParticipationService, logger zerolog.Logger) *ParticipationController {
	return &ParticipationController{
		participationService: participationService,
		logger:               logger,
	}
}

// JoinEvent registers the caller for an event
// @Summary Join an event
// @Description Sets the caller's participation status to 'going'. Joining twice is idempotent; a cancelled participation is revived.
// @Tags participation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinLeaveResponse} "Joined"
// @Failure 400 {object} dto.ErrorResponse "Event is cancelled"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/join [post]
func (c *ParticipationController) JoinEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	userID := ctx.GetInt64(middleware.ContextUserID)

	participation, count, err := c.participationService.Join(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.JoinLeaveResponse{
		Message:           "Joined event",
		Participation:     dto.NewParticipationResponse(participation),
		ParticipantsCount: count,
	}))
}

// LeaveEvent cancels the caller's participation
// @Summary Leave an event
// @Description Sets the caller's participation status to 'cancelled'. The row is kept; leaving without a prior join fails.
// @Tags participation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinLeaveResponse} "Left"
// @Failure 404 {object} dto.ErrorResponse "Event or participation not found"
// @Router /events/{id}/leave [post]
func (c *ParticipationController) LeaveEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	userID := ctx.GetInt64(middleware.ContextUserID)

	participation, count, err := c.participationService.Leave(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.JoinLeaveResponse{
		Message:           "Left event",
		Participation:     dto.NewParticipationResponse(participation),
		ParticipantsCount: count,
	}))
}

// ListParticipants returns the participant roster for an event
// @Summary List event participants
// @Description Restricted to super-admins and org-admins of the hosting organization. Supports a status query filter.
// @Tags participation
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param status query string false "Participation status filter" Enums(going, interested, cancelled)
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantListResponse} "Roster"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view the roster"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/participants [get]
func (c *ParticipationController) ListParticipants(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var statusFilter *models.ParticipationStatus
	if v := ctx.Query("status"); v != "" {
		status := models.ParticipationStatus(v)
		statusFilter = &status
	}

	roster, err := c.participationService.GetRoster(ctx.Request.Context(), caller, eventID, statusFilter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ParticipationResponse, 0, len(roster.Participations))
	for _, p := range roster.Participations {
		responses = append(responses, dto.NewParticipationResponse(p))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ParticipantListResponse{
		Total:        len(responses),
		Participants: responses,
		Stats:        roster.Stats,
	}))
}
