package services

import (
	"context"
	"errors"

	appauth "github.com/mkowalczyk/campushub/internal/app/auth"
	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
)

// ParticipationStore is the participation persistence surface the service needs
type ParticipationStore interface {
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.EventParticipation, error)
	Create(ctx context.Context, participation *models.EventParticipation) error
	UpdateStatus(ctx context.Context, id int64, status models.ParticipationStatus) error
	CountGoing(ctx context.Context, eventID int64) (int, error)
	GetStats(ctx context.Context, eventID int64) (*models.ParticipationStats, error)
	ListByEvent(ctx context.Context, eventID int64, status *models.ParticipationStatus) ([]*models.EventParticipation, error)
}

// EventGetter loads events for participation checks
type EventGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// ParticipationService handles joining and leaving events and the roster.
// The (event, user) pair maps to at most one participation row; join and
// leave flip its status instead of inserting or deleting rows, so the full
// history of a user's relationship to an event survives.
type ParticipationService struct {
	participationStore ParticipationStore
	eventStore         EventGetter
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(participationStore ParticipationStore, eventStore EventGetter) *ParticipationService {
	return &ParticipationService{
		participationStore: participationStore,
		eventStore:         eventStore,
	}
}

// Roster is the participant listing returned to organization admins
type Roster struct {
	Participations []*models.EventParticipation
	Stats          models.ParticipationStats
}

// Join registers the user for an event with status 'going'. Joining twice is
// idempotent. A previously cancelled participation is revived by flipping its
// status back, keeping the original row.
func (s *ParticipationService) Join(ctx context.Context, userID, eventID int64) (*models.EventParticipation, int, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if !event.Joinable() {
		return nil, 0, apperrors.NewInvalidStateError("cannot join a cancelled or deleted event")
	}

	participation, err := s.participationStore.GetByEventAndUser(ctx, eventID, userID)
	switch {
	case err == nil:
		if participation.Status != models.ParticipationGoing {
			if err := s.participationStore.UpdateStatus(ctx, participation.ID, models.ParticipationGoing); err != nil {
				return nil, 0, err
			}
			participation.Status = models.ParticipationGoing
		}
	case errors.Is(err, apperrors.ErrNotParticipating):
		participation = &models.EventParticipation{
			EventID: eventID,
			UserID:  userID,
			Status:  models.ParticipationGoing,
		}
		err = s.participationStore.Create(ctx, participation)
		if errors.Is(err, apperrors.ErrAlreadyParticipating) {
			// A concurrent join inserted the row first. Fall back to
			// updating the existing one.
			participation, err = s.participationStore.GetByEventAndUser(ctx, eventID, userID)
			if err != nil {
				return nil, 0, err
			}
			if participation.Status != models.ParticipationGoing {
				if err := s.participationStore.UpdateStatus(ctx, participation.ID, models.ParticipationGoing); err != nil {
					return nil, 0, err
				}
				participation.Status = models.ParticipationGoing
			}
		} else if err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, err
	}

	count, err := s.participationStore.CountGoing(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}

	logger.Info().Int64("eventId", eventID).Int64("userId", userID).Int("participantsCount", count).Msg("User joined event")
	return participation, count, nil
}

// Leave cancels the user's participation. The row is kept with status
// 'cancelled'; leaving without a prior join is an error.
func (s *ParticipationService) Leave(ctx context.Context, userID, eventID int64) (*models.EventParticipation, int, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if event.IsDeleted() {
		return nil, 0, apperrors.ErrEventNotFound
	}

	participation, err := s.participationStore.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, 0, err
	}

	if participation.Status != models.ParticipationCancelled {
		if err := s.participationStore.UpdateStatus(ctx, participation.ID, models.ParticipationCancelled); err != nil {
			return nil, 0, err
		}
		participation.Status = models.ParticipationCancelled
	}

	count, err := s.participationStore.CountGoing(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}

	logger.Info().Int64("eventId", eventID).Int64("userId", userID).Int("participantsCount", count).Msg("User left event")
	return participation, count, nil
}

// GetRoster returns the participant list for an event, optionally filtered by
// status, plus per-status counts. Restricted to super-admins and org-admins
// of the hosting organization.
func (s *ParticipationService) GetRoster(ctx context.Context, caller *models.User, eventID int64, statusFilter *models.ParticipationStatus) (*Roster, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsDeleted() && !caller.IsSuperAdmin() {
		return nil, apperrors.ErrEventNotFound
	}
	if !appauth.CanViewRoster(caller, event) {
		return nil, apperrors.NewForbiddenError("only organization admins may view the participant roster")
	}

	if statusFilter != nil && !models.ValidParticipationStatus(*statusFilter) {
		return nil, apperrors.NewValidationError("unknown participation status: " + string(*statusFilter))
	}

	participations, err := s.participationStore.ListByEvent(ctx, eventID, statusFilter)
	if err != nil {
		return nil, err
	}

	// Stats cover the filtered result set, not the whole event.
	var stats models.ParticipationStats
	if statusFilter == nil {
		computed, err := s.participationStore.GetStats(ctx, eventID)
		if err != nil {
			return nil, err
		}
		stats = *computed
	} else {
		switch *statusFilter {
		case models.ParticipationGoing:
			stats.Going = len(participations)
		case models.ParticipationInterested:
			stats.Interested = len(participations)
		case models.ParticipationCancelled:
			stats.Cancelled = len(participations)
		}
	}

	return &Roster{
		Participations: participations,
		Stats:          stats,
	}, nil
}

// GetParticipation returns the caller's own participation row for an event
func (s *ParticipationService) GetParticipation(ctx context.Context, userID, eventID int64) (*models.EventParticipation, error) {
	return s.participationStore.GetByEventAndUser(ctx, eventID, userID)
}
