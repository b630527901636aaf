package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
)

type fakeEventGetter struct {
	events map[int64]*models.Event
}

func (f *fakeEventGetter) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

// fakeParticipationStore keeps one row per (event, user) pair in memory and
// records which store methods the service invoked.
type fakeParticipationStore struct {
	rows   map[[2]int64]*models.EventParticipation
	nextID int64
	calls  []string

	getMissOnce bool
}

func newFakeParticipationStore() *fakeParticipationStore {
	return &fakeParticipationStore{
		rows:   make(map[[2]int64]*models.EventParticipation),
		nextID: 1,
	}
}

func (f *fakeParticipationStore) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.EventParticipation, error) {
	f.calls = append(f.calls, "GetByEventAndUser")
	if f.getMissOnce {
		f.getMissOnce = false
		return nil, apperrors.ErrNotParticipating
	}
	row, ok := f.rows[[2]int64{eventID, userID}]
	if !ok {
		return nil, apperrors.ErrNotParticipating
	}
	copied := *row
	return &copied, nil
}

func (f *fakeParticipationStore) Create(ctx context.Context, p *models.EventParticipation) error {
	f.calls = append(f.calls, "Create")
	key := [2]int64{p.EventID, p.UserID}
	if _, ok := f.rows[key]; ok {
		return apperrors.ErrAlreadyParticipating
	}
	p.ID = f.nextID
	f.nextID++
	stored := *p
	f.rows[key] = &stored
	return nil
}

func (f *fakeParticipationStore) UpdateStatus(ctx context.Context, id int64, status models.ParticipationStatus) error {
	f.calls = append(f.calls, "UpdateStatus")
	for _, row := range f.rows {
		if row.ID == id {
			row.Status = status
			return nil
		}
	}
	return apperrors.ErrNotParticipating
}

func (f *fakeParticipationStore) CountGoing(ctx context.Context, eventID int64) (int, error) {
	f.calls = append(f.calls, "CountGoing")
	count := 0
	for _, row := range f.rows {
		if row.EventID == eventID && row.Status == models.ParticipationGoing {
			count++
		}
	}
	return count, nil
}

func (f *fakeParticipationStore) GetStats(ctx context.Context, eventID int64) (*models.ParticipationStats, error) {
	stats := &models.ParticipationStats{}
	for _, row := range f.rows {
		if row.EventID != eventID {
			continue
		}
		switch row.Status {
		case models.ParticipationGoing:
			stats.Going++
		case models.ParticipationInterested:
			stats.Interested++
		case models.ParticipationCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (f *fakeParticipationStore) ListByEvent(ctx context.Context, eventID int64, status *models.ParticipationStatus) ([]*models.EventParticipation, error) {
	var out []*models.EventParticipation
	for _, row := range f.rows {
		if row.EventID != eventID {
			continue
		}
		if status != nil && row.Status != *status {
			continue
		}
		copied := *row
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeParticipationStore) seed(eventID, userID int64, status models.ParticipationStatus) *models.EventParticipation {
	row := &models.EventParticipation{
		ID:      f.nextID,
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}
	f.nextID++
	f.rows[[2]int64{eventID, userID}] = row
	return row
}

func upcomingEvent(id int64) *models.Event {
	return &models.Event{ID: id, OrganizationID: 10, Status: models.EventUpcoming}
}

func newParticipationFixture(events ...*models.Event) (*ParticipationService, *fakeParticipationStore) {
	getter := &fakeEventGetter{events: make(map[int64]*models.Event)}
	for _, e := range events {
		getter.events[e.ID] = e
	}
	store := newFakeParticipationStore()
	return NewParticipationService(store, getter), store
}

func TestJoinCreatesGoingParticipation(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))

	participation, count, err := svc.Join(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if participation.Status != models.ParticipationGoing {
		t.Errorf("status = %q, want going", participation.Status)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if len(store.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(store.rows))
	}
}

func TestJoinTwiceIsIdempotent(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))

	if _, _, err := svc.Join(context.Background(), 42, 1); err != nil {
		t.Fatalf("first Join: %v", err)
	}
	first := *store.rows[[2]int64{1, 42}]

	participation, count, err := svc.Join(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("second Join: %v", err)
	}
	if count != 1 {
		t.Errorf("count after double join = %d, want 1", count)
	}
	if participation.ID != first.ID {
		t.Errorf("second join produced a new row: id %d, want %d", participation.ID, first.ID)
	}
	if len(store.rows) != 1 {
		t.Errorf("rows = %d, want 1", len(store.rows))
	}
}

func TestJoinRevivesCancelledParticipation(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))
	original := store.seed(1, 42, models.ParticipationCancelled)

	participation, count, err := svc.Join(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if participation.ID != original.ID {
		t.Errorf("revival created a new row: id %d, want %d", participation.ID, original.ID)
	}
	if participation.Status != models.ParticipationGoing {
		t.Errorf("status = %q, want going", participation.Status)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestJoinCancelledEventRejected(t *testing.T) {
	event := upcomingEvent(1)
	event.Status = models.EventCancelled
	svc, store := newParticipationFixture(event)

	_, _, err := svc.Join(context.Background(), 42, 1)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
	if len(store.rows) != 0 {
		t.Error("join of a cancelled event wrote a row")
	}
}

func TestJoinDeletedEventRejected(t *testing.T) {
	event := upcomingEvent(1)
	now := time.Now()
	event.DeletedAt = &now
	svc, _ := newParticipationFixture(event)

	_, _, err := svc.Join(context.Background(), 42, 1)
	if !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestJoinMissingEventNotFound(t *testing.T) {
	svc, _ := newParticipationFixture()

	_, _, err := svc.Join(context.Background(), 42, 99)
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}

func TestJoinRetriesAfterConcurrentInsert(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))

	// The row exists but the first lookup misses it, as if another request
	// inserted it between our lookup and our insert. Create then reports a
	// duplicate and the service must fall back to updating the row.
	seeded := store.seed(1, 42, models.ParticipationCancelled)
	store.getMissOnce = true

	participation, count, err := svc.Join(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if participation.ID != seeded.ID {
		t.Errorf("retry path created a new row: id %d, want %d", participation.ID, seeded.ID)
	}
	if participation.Status != models.ParticipationGoing {
		t.Errorf("status = %q, want going", participation.Status)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestLeaveFlipsStatusToCancelled(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))
	store.seed(1, 42, models.ParticipationGoing)

	participation, count, err := svc.Leave(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if participation.Status != models.ParticipationCancelled {
		t.Errorf("status = %q, want cancelled", participation.Status)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if len(store.rows) != 1 {
		t.Error("leave deleted the participation row")
	}
}

func TestLeaveWithoutJoinRejected(t *testing.T) {
	svc, _ := newParticipationFixture(upcomingEvent(1))

	_, _, err := svc.Leave(context.Background(), 42, 1)
	if !errors.Is(err, apperrors.ErrNotParticipating) {
		t.Errorf("err = %v, want ErrNotParticipating", err)
	}
}

func TestLeaveTwiceIsIdempotent(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))
	store.seed(1, 42, models.ParticipationGoing)

	if _, _, err := svc.Leave(context.Background(), 42, 1); err != nil {
		t.Fatalf("first Leave: %v", err)
	}
	updates := 0
	for _, call := range store.calls {
		if call == "UpdateStatus" {
			updates++
		}
	}

	if _, _, err := svc.Leave(context.Background(), 42, 1); err != nil {
		t.Fatalf("second Leave: %v", err)
	}
	updatesAfter := 0
	for _, call := range store.calls {
		if call == "UpdateStatus" {
			updatesAfter++
		}
	}
	if updatesAfter != updates {
		t.Errorf("second leave issued %d extra status updates", updatesAfter-updates)
	}
}

func TestCountReflectsJoinsMinusLeaves(t *testing.T) {
	svc, _ := newParticipationFixture(upcomingEvent(1))
	ctx := context.Background()

	for userID := int64(1); userID <= 5; userID++ {
		if _, _, err := svc.Join(ctx, userID, 1); err != nil {
			t.Fatalf("Join user %d: %v", userID, err)
		}
	}
	for userID := int64(1); userID <= 2; userID++ {
		if _, _, err := svc.Leave(ctx, userID, 1); err != nil {
			t.Fatalf("Leave user %d: %v", userID, err)
		}
	}

	_, count, err := svc.Join(ctx, int64(6), 1)
	if err != nil {
		t.Fatalf("Join user 6: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}

func TestGetRosterRequiresHostingOrgAdmin(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))
	store.seed(1, 42, models.ParticipationGoing)

	otherOrg := int64(20)
	caller := &models.User{ID: 5, RoleType: models.RoleOrgAdmin, OrganizationID: &otherOrg}
	_, err := svc.GetRoster(context.Background(), caller, 1, nil)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("cross-org admin err = %v, want ErrPermissionDenied", err)
	}

	student := &models.User{ID: 6, RoleType: models.RoleStudent}
	_, err = svc.GetRoster(context.Background(), student, 1, nil)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student err = %v, want ErrPermissionDenied", err)
	}
}

func TestGetRosterReturnsStatsAndFilter(t *testing.T) {
	svc, store := newParticipationFixture(upcomingEvent(1))
	store.seed(1, 41, models.ParticipationGoing)
	store.seed(1, 42, models.ParticipationGoing)
	store.seed(1, 43, models.ParticipationCancelled)

	hostOrg := int64(10)
	caller := &models.User{ID: 5, RoleType: models.RoleOrgAdmin, OrganizationID: &hostOrg}

	roster, err := svc.GetRoster(context.Background(), caller, 1, nil)
	if err != nil {
		t.Fatalf("GetRoster: %v", err)
	}
	if len(roster.Participations) != 3 {
		t.Errorf("participations = %d, want 3", len(roster.Participations))
	}
	if roster.Stats.Going != 2 || roster.Stats.Cancelled != 1 {
		t.Errorf("stats = %+v, want going=2 cancelled=1", roster.Stats)
	}

	going := models.ParticipationGoing
	filtered, err := svc.GetRoster(context.Background(), caller, 1, &going)
	if err != nil {
		t.Fatalf("GetRoster filtered: %v", err)
	}
	if len(filtered.Participations) != 2 {
		t.Errorf("filtered participations = %d, want 2", len(filtered.Participations))
	}
	if filtered.Stats.Going != 2 || filtered.Stats.Cancelled != 0 {
		t.Errorf("filtered stats = %+v, want going=2 cancelled=0", filtered.Stats)
	}
}

func TestGetRosterRejectsUnknownStatusFilter(t *testing.T) {
	svc, _ := newParticipationFixture(upcomingEvent(1))

	caller := &models.User{ID: 1, RoleType: models.RoleSuperAdmin}
	bogus := models.ParticipationStatus("maybe")
	_, err := svc.GetRoster(context.Background(), caller, 1, &bogus)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}
