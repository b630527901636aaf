package dto

import (
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

// OrganizationResponse represents organization information returned by the API
type OrganizationResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	ContactEmail *string    `json:"contactEmail,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Status       string     `json:"status"`
	FoundedYear  *int       `json:"foundedYear,omitempty"`
	Featured     bool       `json:"featured"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// OrganizationListResponse wraps a page of organizations
type OrganizationListResponse struct {
	Organizations  []OrganizationResponse `json:"organizations"`
	PaginationInfo PaginationInfo         `json:"pagination"`
}

// CreateOrganizationRequest represents organization creation data.
// Slug is optional; it is generated from the name when absent.
type CreateOrganizationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Slug         string  `json:"slug"`
	Type         string  `json:"type" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	ContactEmail *string `json:"contactEmail,omitempty" binding:"omitempty,email"`
	Website      *string `json:"website,omitempty"`
	FoundedYear  *int    `json:"foundedYear,omitempty"`
}

// UpdateOrganizationRequest represents organization update data. Nil fields
// are left unchanged.
type UpdateOrganizationRequest struct {
	Name         *string `json:"name,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	Type         *string `json:"type,omitempty"`
	Description  *string `json:"description,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty" binding:"omitempty,email"`
	Website      *string `json:"website,omitempty"`
	Status       *string `json:"status,omitempty"`
	FoundedYear  *int    `json:"foundedYear,omitempty"`
	Featured     *bool   `json:"featured,omitempty"`
}

// OrganizationFilterRequest carries list filters
type OrganizationFilterRequest struct {
	Type     *string
	Search   *string
	Page     int
	PageSize int
}

// NewOrganizationResponse maps an organization model to its API representation
func NewOrganizationResponse(org *models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:           org.ID,
		Name:         org.Name,
		Slug:         org.Slug,
		Type:         string(org.Type),
		Description:  org.Description,
		ContactEmail: org.ContactEmail,
		Website:      org.Website,
		Status:       string(org.Status),
		FoundedYear:  org.FoundedYear,
		Featured:     org.Featured,
		DeletedAt:    org.DeletedAt,
		CreatedAt:    org.CreatedAt,
		UpdatedAt:    org.UpdatedAt,
	}
}
