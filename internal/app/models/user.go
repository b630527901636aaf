package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email          string     `json:"email" db:"email" example:"user@campus.edu.pl"`            // User's email address
	Password       string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName      string     `json:"firstName" db:"first_name" example:"Jan"`                  // User's first name
	LastName       string     `json:"lastName" db:"last_name" example:"Kowalski"`               // User's last name
	RoleType       RoleType   `json:"role" db:"role" example:"student"`                         // User's role (student, org-admin, staff, super-admin)
	OrganizationID *int64     `json:"organizationId,omitempty" db:"organization_id"`            // Organization the user belongs to (nullable, N:1)
	StudentID      *string    `json:"studentId,omitempty" db:"student_id"`                      // Student index number (nullable, unique)
	Bio            *string    `json:"bio,omitempty" db:"bio"`                                   // Short biography
	Phone          *string    `json:"phone,omitempty" db:"phone"`                               // Phone number
	Faculty        *string    `json:"faculty,omitempty" db:"faculty"`                           // Faculty name
	FieldOfStudy   *string    `json:"fieldOfStudy,omitempty" db:"field_of_study"`               // Field of study
	YearOfStudy    *int       `json:"yearOfStudy,omitempty" db:"year_of_study"`                 // Current year of study (1-7)
	IsActive       bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
	CreatedAt      time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated

	// Related entities
	Organization *Organization `json:"organization,omitempty"` // Relation, no db tag
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsSuperAdmin reports whether the user holds the super-admin role.
func (u *User) IsSuperAdmin() bool {
	return u.RoleType == RoleSuperAdmin
}

// BelongsTo reports whether the user is a member of the given organization.
func (u *User) BelongsTo(organizationID int64) bool {
	return u.OrganizationID != nil && *u.OrganizationID == organizationID
}
