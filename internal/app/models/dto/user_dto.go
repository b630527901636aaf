package dto

import (
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

// UserResponse represents user information returned by the API
type UserResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Role           string     `json:"role"`
	OrganizationID *int64     `json:"organizationId,omitempty"`
	StudentID      *string    `json:"studentId,omitempty"`
	Bio            *string    `json:"bio,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Faculty        *string    `json:"faculty,omitempty"`
	FieldOfStudy   *string    `json:"fieldOfStudy,omitempty"`
	YearOfStudy    *int       `json:"yearOfStudy,omitempty"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// UserBasicResponse is a minimal user projection embedded in other resources
type UserBasicResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UpdateUserRequest represents profile update data. Nil fields are left
// unchanged. Role may only be set by a super-admin.
type UpdateUserRequest struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Faculty        *string `json:"faculty,omitempty"`
	FieldOfStudy   *string `json:"fieldOfStudy,omitempty"`
	YearOfStudy    *int    `json:"yearOfStudy,omitempty" binding:"omitempty,min=1,max=7"`
	Role           *string `json:"role,omitempty"`
	OrganizationID *int64  `json:"organizationId,omitempty"`
}

// NewUserResponse maps a user model to its API representation
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           string(user.RoleType),
		OrganizationID: user.OrganizationID,
		StudentID:      user.StudentID,
		Bio:            user.Bio,
		Phone:          user.Phone,
		Faculty:        user.Faculty,
		FieldOfStudy:   user.FieldOfStudy,
		YearOfStudy:    user.YearOfStudy,
		IsActive:       user.IsActive,
		LastLoginAt:    user.LastLoginAt,
		CreatedAt:      user.CreatedAt,
	}
}

// NewUserBasicResponse maps a user model to its minimal projection
func NewUserBasicResponse(user *models.User) UserBasicResponse {
	return UserBasicResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
