package models

import "time"

// Organization represents a student organization, circle or faculty unit
type Organization struct {
	ID           int64              `json:"id" db:"id"`
	Name         string             `json:"name" db:"name"`
	Slug         string             `json:"slug" db:"slug"`
	Type         OrganizationType   `json:"type" db:"type"`
	Description  string             `json:"description" db:"description"`
	ContactEmail *string            `json:"contactEmail,omitempty" db:"contact_email"`
	Website      *string            `json:"website,omitempty" db:"website"`
	Status       OrganizationStatus `json:"status" db:"status"`
	FoundedYear  *int               `json:"foundedYear,omitempty" db:"founded_year"`
	Featured     bool               `json:"featured" db:"featured"`
	DeletedAt    *time.Time         `json:"deletedAt,omitempty" db:"deleted_at"`
	DeletedBy    *int64             `json:"deletedBy,omitempty" db:"deleted_by"`
	CreatedAt    time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" db:"updated_at"`
}

// IsDeleted reports whether the organization has been soft-deleted.
func (o *Organization) IsDeleted() bool {
	return o.DeletedAt != nil
}

// VisibleTo reports whether the organization should be visible to a caller with
// the given role. Only super-admins see soft-deleted or non-active organizations.
func (o *Organization) VisibleTo(role RoleType) bool {
	if role == RoleSuperAdmin {
		return true
	}
	return !o.IsDeleted() && o.Status == OrganizationActive
}
