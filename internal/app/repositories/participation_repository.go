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
)

// ParticipationRepository handles event participation database operations
type ParticipationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByEventAndUser retrieves a participation row for the (event, user) pair.
// Returns apperrors.ErrNotParticipating when no row exists.
func (r *ParticipationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.EventParticipation, error) {
	sql, args, err := r.sb.Select("id", "event_id", "user_id", "status", "created_at", "updated_at").
		From("event_participations").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get participation query: %w", err)
	}

	var p models.EventParticipation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotParticipating
		}
		return nil, fmt.Errorf("error getting participation: %w", err)
	}
	return &p, nil
}

// Create inserts a participation row. A UNIQUE(event_id, user_id) constraint
// guards against concurrent inserts; a violation surfaces as
// apperrors.ErrAlreadyParticipating so the caller can fall back to an update.
func (r *ParticipationRepository) Create(ctx context.Context, participation *models.EventParticipation) error {
	sql, args, err := r.sb.Insert("event_participations").
		Columns("event_id", "user_id", "status").
		Values(participation.EventID, participation.UserID, participation.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create participation query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&participation.ID, &participation.CreatedAt, &participation.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyParticipating
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error creating participation: %w", err)
	}
	return nil
}

// UpdateStatus changes the status of an existing participation row
func (r *ParticipationRepository) UpdateStatus(ctx context.Context, id int64, status models.ParticipationStatus) error {
	sql, args, err := r.sb.Update("event_participations").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update participation query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating participation status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotParticipating
	}
	return nil
}

// CountGoing returns the number of participations with status 'going' for an
// event. The count is always computed from rows, never cached.
func (r *ParticipationRepository) CountGoing(ctx context.Context, eventID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("event_participations").
		Where(squirrel.Eq{"event_id": eventID, "status": models.ParticipationGoing}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count going query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting going participations: %w", err)
	}
	return count, nil
}

// GetStats returns per-status participation counts for an event
func (r *ParticipationRepository) GetStats(ctx context.Context, eventID int64) (*models.ParticipationStats, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("event_participations").
		Where(squirrel.Eq{"event_id": eventID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build participation stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying participation stats: %w", err)
	}
	defer rows.Close()

	stats := &models.ParticipationStats{}
	for rows.Next() {
		var status models.ParticipationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning participation stats row: %w", err)
		}
		switch status {
		case models.ParticipationGoing:
			stats.Going = count
		case models.ParticipationInterested:
			stats.Interested = count
		case models.ParticipationCancelled:
			stats.Cancelled = count
		}
	}
	return stats, nil
}

// ListByEvent retrieves participations for an event with the participant user
// embedded, optionally restricted to a single status.
func (r *ParticipationRepository) ListByEvent(ctx context.Context, eventID int64, status *models.ParticipationStatus) ([]*models.EventParticipation, error) {
	query := r.sb.Select(
		"p.id", "p.event_id", "p.user_id", "p.status", "p.created_at", "p.updated_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role", "u.student_id",
	).
		From("event_participations p").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"p.event_id": eventID}).
		OrderBy("p.created_at ASC")
	if status != nil {
		query = query.Where(squirrel.Eq{"p.status": *status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing participations: %w", err)
	}
	defer rows.Close()

	var participations []*models.EventParticipation
	for rows.Next() {
		p, err := scanRosterRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning participation row: %w", err)
		}
		participations = append(participations, p)
	}
	return participations, nil
}

// scanRosterRow scans a joined participation + user row in the column order
// used by ListByEvent.
func scanRosterRow(row pgx.Row) (*models.EventParticipation, error) {
	var p models.EventParticipation
	var u models.User
	err := row.Scan(
		&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.StudentID,
	)
	if err != nil {
		return nil, err
	}
	p.User = &u
	return &p, nil
}
