package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

// fakeRow satisfies pgx.Row and copies a fixed value list into the scan
// destinations, pinning the column arity and destination types of the
// roster query.
type fakeRow struct {
	values []interface{}
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan arity mismatch: %d destinations, %d values", len(dest), len(r.values))
	}
	for i, value := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			*d = value.(int64)
		case *string:
			*d = value.(string)
		case **string:
			*d = value.(*string)
		case *time.Time:
			*d = value.(time.Time)
		case *models.ParticipationStatus:
			*d = value.(models.ParticipationStatus)
		case *models.RoleType:
			*d = value.(models.RoleType)
		default:
			return fmt.Errorf("unexpected scan destination %T at index %d", dest[i], i)
		}
	}
	return nil
}

func TestScanRosterRowPopulatesUser(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	studentID := "123456"
	row := fakeRow{values: []interface{}{
		int64(7), int64(1), int64(42), models.ParticipationGoing, created, created,
		int64(42), "student@example.com", "Jan", "Kowalski", models.RoleStudent, &studentID,
	}}

	p, err := scanRosterRow(row)
	if err != nil {
		t.Fatalf("scanRosterRow: %v", err)
	}
	if p.ID != 7 || p.EventID != 1 || p.UserID != 42 {
		t.Errorf("participation ids = %d/%d/%d, want 7/1/42", p.ID, p.EventID, p.UserID)
	}
	if p.Status != models.ParticipationGoing {
		t.Errorf("status = %q, want going", p.Status)
	}
	if p.User == nil {
		t.Fatal("embedded user not populated")
	}
	if p.User.ID != 42 || p.User.Email != "student@example.com" {
		t.Errorf("user = %d/%q, want 42/student@example.com", p.User.ID, p.User.Email)
	}
	if p.User.RoleType != models.RoleStudent {
		t.Errorf("role = %q, want student", p.User.RoleType)
	}
	if p.User.StudentID == nil || *p.User.StudentID != "123456" {
		t.Errorf("studentId = %v, want 123456", p.User.StudentID)
	}
}
