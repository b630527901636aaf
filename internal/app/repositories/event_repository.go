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

var eventColumns = []string{
	"id", "title", "slug", "description", "organization_id", "event_date",
	"end_date", "location", "category", "capacity", "registration_required",
	"status", "featured", "deleted_at", "deleted_by", "created_at", "updated_at",
}

// EventRepository handles event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.OrganizationID,
		&e.EventDate, &e.EndDate, &e.Location, &e.Category, &e.Capacity,
		&e.RegistrationRequired, &e.Status, &e.Featured, &e.DeletedAt,
		&e.DeletedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event and sets its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("title", "slug", "description", "organization_id", "event_date",
			"end_date", "location", "category", "capacity",
			"registration_required", "status", "featured").
		Values(event.Title, event.Slug, event.Description, event.OrganizationID,
			event.EventDate, event.EndDate, event.Location, event.Category,
			event.Capacity, event.RegistrationRequired, event.Status,
			event.Featured).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "events_slug_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrOrganizationNotFound
		}
		logger.Error().Err(err).Str("title", event.Title).Msg("Error executing create event query")
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID, including soft-deleted rows.
// Visibility filtering happens in the service layer.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event by id: %w", err)
	}
	return event, nil
}

// GetBySlug retrieves an event by its slug, including soft-deleted rows
func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event by slug query: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event by slug: %w", err)
	}
	return event, nil
}

// SlugExists reports whether a slug is taken by a different event
func (r *EventRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := r.sb.Select("1").
		From("events").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1)
	if excludeID > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build event slug exists query: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking event slug existence: %w", err)
	}
	return true, nil
}

// GetAll retrieves events with optional filters and pagination. When
// includeDeleted is false, soft-deleted events are excluded.
func (r *EventRepository) GetAll(ctx context.Context, filter *models.EventFilter, includeDeleted bool, offset uint64, limit int) ([]*models.Event, int64, error) {
	base := r.sb.Select(eventColumns...).From("events")
	countQuery := r.sb.Select("COUNT(*)").From("events")

	applyWhere := func(cond interface{}) {
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if !includeDeleted {
		applyWhere(squirrel.Eq{"deleted_at": nil})
	}
	if filter != nil {
		if filter.OrganizationID != nil {
			applyWhere(squirrel.Eq{"organization_id": *filter.OrganizationID})
		}
		if filter.Category != nil {
			applyWhere(squirrel.Eq{"category": *filter.Category})
		}
		if filter.Status != nil {
			applyWhere(squirrel.Eq{"status": *filter.Status})
		}
		if filter.Featured != nil {
			applyWhere(squirrel.Eq{"featured": *filter.Featured})
		}
		if filter.UpcomingOnly {
			applyWhere(squirrel.GtOrEq{"event_date": time.Now()})
		}
		if filter.Search != nil {
			applyWhere(squirrel.Or{
				squirrel.ILike{"title": "%" + *filter.Search + "%"},
				squirrel.ILike{"description": "%" + *filter.Search + "%"},
			})
		}
	}

	sql, args, err := base.OrderBy("event_date ASC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	return events, total, nil
}

// Update persists mutable event fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("slug", event.Slug).
		Set("description", event.Description).
		Set("event_date", event.EventDate).
		Set("end_date", event.EndDate).
		Set("location", event.Location).
		Set("category", event.Category).
		Set("capacity", event.Capacity).
		Set("registration_required", event.RegistrationRequired).
		Set("status", event.Status).
		Set("featured", event.Featured).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "events_slug_key") {
			return apperrors.ErrSlugAlreadyExists
		}
		return fmt.Errorf("error updating event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// SoftDelete marks an event as deleted without removing the row
func (r *EventRepository) SoftDelete(ctx context.Context, id, deletedBy int64) error {
	sql, args, err := r.sb.Update("events").
		Set("deleted_at", time.Now()).
		Set("deleted_by", deletedBy).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete event query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error soft deleting event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
