package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/mkowalczyk/campushub/internal/app/models"
	appRepos "github.com/mkowalczyk/campushub/internal/app/repositories"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	pkgAuth "github.com/mkowalczyk/campushub/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// CreateDefaultData seeds the default super-admin account and a sample
// organization. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	orgRepo := appRepos.NewOrganizationRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// Default super-admin. The password must be changed after first login.
	adminEmail := "admin@campushub.local"
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := pkgAuth.HashPassword("Admin123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:     adminEmail,
				Password:  hashed,
				FirstName: "Campus",
				LastName:  "Admin",
				RoleType:  appModels.RoleSuperAdmin,
				IsActive:  true,
			}
			if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", adminEmail).Msg("Default super-admin account created")
			}
		}
	}

	// Sample organization so the API has something to list on first run.
	sampleOrg := &appModels.Organization{
		Name:        "Student Government",
		Slug:        "student-government",
		Type:        appModels.OrgTypeStudentGovernment,
		Description: "The central student government of the campus.",
		Status:      appModels.OrganizationActive,
	}
	if err := orgRepo.Create(ctx, sampleOrg); err != nil && !errors.Is(err, apperrors.ErrSlugAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating sample organization")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
