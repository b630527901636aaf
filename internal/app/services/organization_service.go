package services

import (
	"context"

	appauth "github.com/mkowalczyk/campushub/internal/app/auth"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
	"github.com/mkowalczyk/campushub/internal/pkg/slug"
)

// OrganizationStore is the organization persistence surface the service needs
type OrganizationStore interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	GetAll(ctx context.Context, filter *models.OrganizationFilter, includeHidden bool, offset uint64, limit int) ([]*models.Organization, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, org *models.Organization) error
	SoftDelete(ctx context.Context, id, deletedBy int64) error
}

// OrganizationService handles organization CRUD
type OrganizationService struct {
	orgStore OrganizationStore
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(orgStore OrganizationStore) *OrganizationService {
	return &OrganizationService{orgStore: orgStore}
}

func validOrganizationType(t models.OrganizationType) bool {
	switch t {
	case models.OrgTypeScientificCircle, models.OrgTypeStudentOrganization,
		models.OrgTypeFaculty, models.OrgTypeDepartment,
		models.OrgTypeStudentGovernment, models.OrgTypeOther:
		return true
	}
	return false
}

func validOrganizationStatus(s models.OrganizationStatus) bool {
	switch s {
	case models.OrganizationActive, models.OrganizationInactive,
		models.OrganizationPending, models.OrganizationSuspended:
		return true
	}
	return false
}

// CreateOrganization creates a new organization. The slug is generated from
// the name when absent and deduplicated by numeric suffix.
func (s *OrganizationService) CreateOrganization(ctx context.Context, caller *models.User, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	if appauth.Evaluate(appauth.EntityOrganization, appauth.OpCreate, caller.RoleType) == appauth.Deny {
		return nil, apperrors.NewForbiddenError("you are not allowed to create organizations")
	}

	orgType := models.OrganizationType(req.Type)
	if !validOrganizationType(orgType) {
		return nil, apperrors.NewValidationError("unknown organization type: " + req.Type)
	}

	base := req.Slug
	if base == "" {
		base = req.Name
	}
	uniqueSlug, err := slug.Unique(ctx, slug.Slugify(base), 0, s.orgStore.SlugExists)
	if err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:         req.Name,
		Slug:         uniqueSlug,
		Type:         orgType,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		Website:      req.Website,
		Status:       models.OrganizationActive,
		FoundedYear:  req.FoundedYear,
	}

	if err := s.orgStore.Create(ctx, org); err != nil {
		return nil, err
	}

	logger.Info().Int64("organizationId", org.ID).Str("slug", org.Slug).Msg("Organization created")
	return org, nil
}

// GetOrganization retrieves an organization by ID, applying role visibility:
// only super-admins see soft-deleted or non-active organizations.
func (s *OrganizationService) GetOrganization(ctx context.Context, callerRole models.RoleType, id int64) (*models.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !org.VisibleTo(callerRole) {
		return nil, apperrors.ErrOrganizationNotFound
	}
	return org, nil
}

// ListOrganizations retrieves a page of organizations visible to the caller
func (s *OrganizationService) ListOrganizations(ctx context.Context, callerRole models.RoleType, req *dto.OrganizationFilterRequest, offset uint64, limit int) ([]*models.Organization, int64, error) {
	filter := &models.OrganizationFilter{Search: req.Search}
	if req.Type != nil {
		t := models.OrganizationType(*req.Type)
		if !validOrganizationType(t) {
			return nil, 0, apperrors.NewValidationError("unknown organization type: " + *req.Type)
		}
		filter.Type = &t
	}

	includeHidden := appauth.Evaluate(appauth.EntityOrganization, appauth.OpRead, callerRole) == appauth.AllowAll
	return s.orgStore.GetAll(ctx, filter, includeHidden, offset, limit)
}

// UpdateOrganization applies a partial update. Super-admins may update any
// organization; org-admins only their own. Status changes are super-admin only.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, caller *models.User, id int64, req *dto.UpdateOrganizationRequest) (*models.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.IsDeleted() && !caller.IsSuperAdmin() {
		return nil, apperrors.ErrOrganizationNotFound
	}
	if !appauth.CanUpdateOrganization(caller, org.ID) {
		return nil, apperrors.NewForbiddenError("you can only update your own organization")
	}

	if req.Status != nil || req.Featured != nil {
		if !caller.IsSuperAdmin() {
			return nil, apperrors.NewForbiddenError("only super-admins may change organization status")
		}
	}
	if req.Status != nil {
		status := models.OrganizationStatus(*req.Status)
		if !validOrganizationStatus(status) {
			return nil, apperrors.NewValidationError("unknown organization status: " + *req.Status)
		}
		org.Status = status
	}
	if req.Featured != nil {
		org.Featured = *req.Featured
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Type != nil {
		t := models.OrganizationType(*req.Type)
		if !validOrganizationType(t) {
			return nil, apperrors.NewValidationError("unknown organization type: " + *req.Type)
		}
		org.Type = t
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.ContactEmail != nil {
		org.ContactEmail = req.ContactEmail
	}
	if req.Website != nil {
		org.Website = req.Website
	}
	if req.FoundedYear != nil {
		org.FoundedYear = req.FoundedYear
	}
	if req.Slug != nil && *req.Slug != org.Slug {
		uniqueSlug, err := slug.Unique(ctx, slug.Slugify(*req.Slug), org.ID, s.orgStore.SlugExists)
		if err != nil {
			return nil, err
		}
		org.Slug = uniqueSlug
	}

	if err := s.orgStore.Update(ctx, org); err != nil {
		return nil, err
	}

	logger.Info().Int64("organizationId", org.ID).Int64("updatedBy", caller.ID).Msg("Organization updated")
	return org, nil
}

// DeleteOrganization soft-deletes an organization. Super-admin only; the row
// is kept and remains visible to super-admins.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, caller *models.User, id int64) error {
	if appauth.Evaluate(appauth.EntityOrganization, appauth.OpDelete, caller.RoleType) != appauth.Allow {
		return apperrors.NewForbiddenError("only super-admins may delete organizations")
	}

	if err := s.orgStore.SoftDelete(ctx, id, caller.ID); err != nil {
		return err
	}

	logger.Info().Int64("organizationId", id).Int64("deletedBy", caller.ID).Msg("Organization soft-deleted")
	return nil
}
