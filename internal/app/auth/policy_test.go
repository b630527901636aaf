package auth

import (
	"testing"

	"github.com/mkowalczyk/campushub/internal/app/models"
)

func orgID(id int64) *int64 { return &id }

func TestEvaluateDefaultsToDeny(t *testing.T) {
	if got := Evaluate(EntityEvent, OpDelete, models.RoleStudent); got != Deny {
		t.Errorf("student deleting event = %v, want Deny", got)
	}
	if got := Evaluate(EntityOrganization, OpCreate, Anonymous); got != Deny {
		t.Errorf("anonymous creating organization = %v, want Deny", got)
	}
	if got := Evaluate(EntityEvent, OpUpdate, models.RoleStudent); got != Deny {
		t.Errorf("student updating event = %v, want Deny", got)
	}
}

func TestEvaluateSuperAdminReadsIncludeDeleted(t *testing.T) {
	if got := Evaluate(EntityEvent, OpRead, models.RoleSuperAdmin); got != AllowAll {
		t.Errorf("super-admin reading events = %v, want AllowAll", got)
	}
	if got := Evaluate(EntityOrganization, OpRead, models.RoleSuperAdmin); got != AllowAll {
		t.Errorf("super-admin reading organizations = %v, want AllowAll", got)
	}
	if got := Evaluate(EntityEvent, OpRead, models.RoleStudent); got != Allow {
		t.Errorf("student reading events = %v, want Allow", got)
	}
}

func TestCanUpdateEvent(t *testing.T) {
	event := &models.Event{ID: 1, OrganizationID: 10}

	superAdmin := &models.User{ID: 1, RoleType: models.RoleSuperAdmin}
	if !CanUpdateEvent(superAdmin, event) {
		t.Error("super-admin denied event update")
	}

	ownOrgAdmin := &models.User{ID: 2, RoleType: models.RoleOrgAdmin, OrganizationID: orgID(10)}
	if !CanUpdateEvent(ownOrgAdmin, event) {
		t.Error("org-admin of hosting organization denied event update")
	}

	otherOrgAdmin := &models.User{ID: 3, RoleType: models.RoleOrgAdmin, OrganizationID: orgID(20)}
	if CanUpdateEvent(otherOrgAdmin, event) {
		t.Error("org-admin of another organization allowed event update")
	}

	noOrgAdmin := &models.User{ID: 4, RoleType: models.RoleOrgAdmin}
	if CanUpdateEvent(noOrgAdmin, event) {
		t.Error("org-admin without organization allowed event update")
	}

	student := &models.User{ID: 5, RoleType: models.RoleStudent}
	if CanUpdateEvent(student, event) {
		t.Error("student allowed event update")
	}
}

func TestCanUpdateUser(t *testing.T) {
	student := &models.User{ID: 7, RoleType: models.RoleStudent}
	if !CanUpdateUser(student, 7) {
		t.Error("user denied updating own profile")
	}
	if CanUpdateUser(student, 8) {
		t.Error("user allowed updating another profile")
	}

	superAdmin := &models.User{ID: 1, RoleType: models.RoleSuperAdmin}
	if !CanUpdateUser(superAdmin, 8) {
		t.Error("super-admin denied updating another profile")
	}
}

func TestCanSetRole(t *testing.T) {
	if CanSetRole(&models.User{RoleType: models.RoleOrgAdmin}) {
		t.Error("org-admin allowed to set roles")
	}
	if CanSetRole(&models.User{RoleType: models.RoleStaff}) {
		t.Error("staff allowed to set roles")
	}
	if !CanSetRole(&models.User{RoleType: models.RoleSuperAdmin}) {
		t.Error("super-admin denied setting roles")
	}
}

func TestCanViewRoster(t *testing.T) {
	event := &models.Event{ID: 1, OrganizationID: 10}

	if !CanViewRoster(&models.User{RoleType: models.RoleSuperAdmin}, event) {
		t.Error("super-admin denied roster access")
	}
	if !CanViewRoster(&models.User{RoleType: models.RoleOrgAdmin, OrganizationID: orgID(10)}, event) {
		t.Error("org-admin of hosting organization denied roster access")
	}
	if CanViewRoster(&models.User{RoleType: models.RoleOrgAdmin, OrganizationID: orgID(20)}, event) {
		t.Error("org-admin of another organization allowed roster access")
	}
	if CanViewRoster(&models.User{RoleType: models.RoleStudent}, event) {
		t.Error("student allowed roster access")
	}
	if CanViewRoster(&models.User{RoleType: models.RoleStaff}, event) {
		t.Error("staff allowed roster access")
	}
}

func TestCanUpdateOrganization(t *testing.T) {
	if !CanUpdateOrganization(&models.User{RoleType: models.RoleSuperAdmin}, 10) {
		t.Error("super-admin denied organization update")
	}
	if !CanUpdateOrganization(&models.User{RoleType: models.RoleOrgAdmin, OrganizationID: orgID(10)}, 10) {
		t.Error("org-admin denied updating own organization")
	}
	if CanUpdateOrganization(&models.User{RoleType: models.RoleOrgAdmin, OrganizationID: orgID(20)}, 10) {
		t.Error("org-admin allowed updating foreign organization")
	}
	if CanUpdateOrganization(&models.User{RoleType: models.RoleStaff}, 10) {
		t.Error("staff allowed organization update")
	}
}
