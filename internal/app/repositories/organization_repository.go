package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/dberrors"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
)

var organizationColumns = []string{
	"id", "name", "slug", "type", "description", "contact_email", "website",
	"status", "founded_year", "featured", "deleted_at", "deleted_by",
	"created_at", "updated_at",
}

// OrganizationRepository handles organization database operations
type OrganizationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(
		&o.ID, &o.Name, &o.Slug, &o.Type, &o.Description, &o.ContactEmail,
		&o.Website, &o.Status, &o.FoundedYear, &o.Featured, &o.DeletedAt,
		&o.DeletedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new organization and sets its generated ID
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	sql, args, err := r.sb.Insert("organizations").
		Columns("name", "slug", "type", "description", "contact_email",
			"website", "status", "founded_year", "featured").
		Values(org.Name, org.Slug, org.Type, org.Description, org.ContactEmail,
			org.Website, org.Status, org.FoundedYear, org.Featured).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create organization query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "organizations_slug_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		logger.Error().Err(err).Str("name", org.Name).Msg("Error executing create organization query")
		return fmt.Errorf("error creating organization: %w", err)
	}
	return nil
}

// GetByID retrieves an organization by ID, including soft-deleted rows.
// Visibility filtering happens in the service layer.
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	sql, args, err := r.sb.Select(organizationColumns...).
		From("organizations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get organization query: %w", err)
	}

	org, err := scanOrganization(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error getting organization by id: %w", err)
	}
	return org, nil
}

// SlugExists reports whether a slug is taken by a different organization.
// excludeID is zero on create paths.
func (r *OrganizationRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := r.sb.Select("1").
		From("organizations").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1)
	if excludeID > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build slug exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking slug existence: %w", err)
	}
	return true, nil
}

// GetAll retrieves organizations with optional filters and pagination.
// When includeHidden is false, only active, non-deleted organizations are
// returned; super-admin callers pass true to see everything.
func (r *OrganizationRepository) GetAll(ctx context.Context, filter *models.OrganizationFilter, includeHidden bool, offset uint64, limit int) ([]*models.Organization, int64, error) {
	base := r.sb.Select(organizationColumns...).From("organizations")
	countQuery := r.sb.Select("COUNT(*)").From("organizations")

	if !includeHidden {
		visible := squirrel.And{
			squirrel.Eq{"deleted_at": nil},
			squirrel.Eq{"status": models.OrganizationActive},
		}
		base = base.Where(visible)
		countQuery = countQuery.Where(visible)
	}
	if filter != nil {
		if filter.Type != nil {
			base = base.Where(squirrel.Eq{"type": *filter.Type})
			countQuery = countQuery.Where(squirrel.Eq{"type": *filter.Type})
		}
		if filter.Search != nil {
			like := squirrel.ILike{"name": "%" + *filter.Search + "%"}
			base = base.Where(like)
			countQuery = countQuery.Where(like)
		}
	}

	sql, args, err := base.OrderBy("name ASC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list organizations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning organization row: %w", err)
		}
		orgs = append(orgs, org)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count organizations query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting organizations: %w", err)
	}

	return orgs, total, nil
}

// Update persists mutable organization fields
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	sql, args, err := r.sb.Update("organizations").
		Set("name", org.Name).
		Set("slug", org.Slug).
		Set("type", org.Type).
		Set("description", org.Description).
		Set("contact_email", org.ContactEmail).
		Set("website", org.Website).
		Set("status", org.Status).
		Set("founded_year", org.FoundedYear).
		Set("featured", org.Featured).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": org.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update organization query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "organizations_slug_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		return fmt.Errorf("error updating organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}

// SoftDelete marks an organization as deleted without removing the row
func (r *OrganizationRepository) SoftDelete(ctx context.Context, id, deletedBy int64) error {
	sql, args, err := r.sb.Update("organizations").
		Set("deleted_at", time.Now()).
		Set("deleted_by", deletedBy).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete organization query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error soft deleting organization: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}
