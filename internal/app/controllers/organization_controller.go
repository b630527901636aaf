package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/app/services"
	"github.com/mkowalczyk/campushub/internal/middleware"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// OrganizationController handles organization operations
type OrganizationController struct {
	organizationService *services.OrganizationService
	logger              zerolog.Logger
}

// NewOrganizationController creates a new OrganizationController
func NewOrganizationController(organizationService *services.OrganizationService, logger zerolog.Logger) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
		logger:              logger,
	}
}

// callerRole returns the caller's role, or the anonymous role on public routes
func callerRole(ctx *gin.Context) models.RoleType {
	return models.RoleType(ctx.GetString(middleware.ContextRole))
}

// CreateOrganization creates a new organization
// @Summary Create an organization
// @Description Staff and super-admins may create organizations. The slug is generated from the name when absent.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} dto.APIResponse{data=dto.OrganizationResponse} "Created organization"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to create organizations"
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Router /organizations [post]
func (c *OrganizationController) CreateOrganization(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	org, err := c.organizationService.CreateOrganization(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewOrganizationResponse(org)))
}

// GetOrganization retrieves an organization by ID
// @Summary Get an organization
// @Description Soft-deleted and non-active organizations are only visible to super-admins.
// @Tags organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Router /organizations/{id} [get]
func (c *OrganizationController) GetOrganization(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	org, err := c.organizationService.GetOrganization(ctx.Request.Context(), callerRole(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOrganizationResponse(org)))
}

// ListOrganizations retrieves a page of organizations
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param type query string false "Organization type filter"
// @Param search query string false "Name search"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationListResponse} "Organizations"
// @Router /organizations [get]
func (c *OrganizationController) ListOrganizations(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	req := &dto.OrganizationFilterRequest{}
	if t := ctx.Query("type"); t != "" {
		req.Type = &t
	}
	if s := ctx.Query("search"); s != "" {
		req.Search = &s
	}

	orgs, total, err := c.organizationService.ListOrganizations(ctx.Request.Context(), callerRole(ctx), req, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		responses = append(responses, dto.NewOrganizationResponse(org))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OrganizationListResponse{
		Organizations:  responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpdateOrganization applies a partial update
// @Summary Update an organization
// @Description Super-admins may update any organization; org-admins only their own. Status changes are super-admin only.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Param request body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Updated organization"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to update this organization"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Router /organizations/{id} [put]
func (c *OrganizationController) UpdateOrganization(ctx *gin.Context) {
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

	var req dto.UpdateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	org, err := c.organizationService.UpdateOrganization(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewOrganizationResponse(org)))
}

// DeleteOrganization soft-deletes an organization
// @Summary Delete an organization
// @Description Super-admin only. The organization is soft-deleted and remains visible to super-admins.
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Organization deleted"
// @Failure 403 {object} dto.ErrorResponse "Super-admin role required"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Router /organizations/{id} [delete]
func (c *OrganizationController) DeleteOrganization(ctx *gin.Context) {
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

	if err := c.organizationService.DeleteOrganization(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Organization deleted"}))
}
