package services

import (
	"context"

	appauth "github.com/mkowalczyk/campushub/internal/app/auth"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
)

// UserUpdater extends UserStore with profile mutation
type UserUpdater interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UserService handles user profile operations
type UserService struct {
	userStore UserUpdater
}

// NewUserService creates a new UserService
func NewUserService(userStore UserUpdater) *UserService {
	return &UserService{userStore: userStore}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// UpdateUser applies a partial profile update. Callers may edit their own
// profile; super-admins may edit anyone. The role and organization fields are
// super-admin only regardless of the target.
func (s *UserService) UpdateUser(ctx context.Context, caller *models.User, targetID int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if !appauth.CanUpdateUser(caller, targetID) {
		return nil, apperrors.NewForbiddenError("you can only update your own profile")
	}

	user, err := s.userStore.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil || req.OrganizationID != nil {
		if !appauth.CanSetRole(caller) {
			return nil, apperrors.NewForbiddenError("only super-admins may change roles or organization membership")
		}
	}
	if req.Role != nil {
		role := models.RoleType(*req.Role)
		if !models.ValidRole(role) {
			return nil, apperrors.NewValidationError("unknown role: " + *req.Role)
		}
		user.RoleType = role
	}
	if req.OrganizationID != nil {
		user.OrganizationID = req.OrganizationID
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Faculty != nil {
		user.Faculty = req.Faculty
	}
	if req.FieldOfStudy != nil {
		user.FieldOfStudy = req.FieldOfStudy
	}
	if req.YearOfStudy != nil {
		user.YearOfStudy = req.YearOfStudy
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Int64("updatedBy", caller.ID).Msg("User profile updated")
	return user, nil
}
