package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/app/models/dto"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
)

func newOrganizationFixture() (*OrganizationService, *fakeOrganizationStore) {
	store := newFakeOrganizationStore()
	return NewOrganizationService(store), store
}

func TestCreateOrganizationRequiresPrivilege(t *testing.T) {
	svc, _ := newOrganizationFixture()

	req := &dto.CreateOrganizationRequest{
		Name:        "Robotics Circle",
		Type:        string(models.OrgTypeScientificCircle),
		Description: "Builds robots",
	}

	student := &models.User{ID: 9, RoleType: models.RoleStudent}
	if _, err := svc.CreateOrganization(context.Background(), student, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("student err = %v, want ErrPermissionDenied", err)
	}

	superAdmin := &models.User{ID: 1, RoleType: models.RoleSuperAdmin}
	org, err := svc.CreateOrganization(context.Background(), superAdmin, req)
	if err != nil {
		t.Fatalf("super-admin CreateOrganization: %v", err)
	}
	if org.Slug != "robotics-circle" {
		t.Errorf("slug = %q, want robotics-circle", org.Slug)
	}
	if org.Status != models.OrganizationActive {
		t.Errorf("status = %q, want active", org.Status)
	}
}

func TestGetOrganizationVisibility(t *testing.T) {
	svc, store := newOrganizationFixture()
	store.seed(&models.Organization{ID: 10, Name: "Hidden Circle", Slug: "hidden-circle", Status: models.OrganizationInactive})

	if _, err := svc.GetOrganization(context.Background(), models.RoleStudent, 10); !errors.Is(err, apperrors.ErrOrganizationNotFound) {
		t.Errorf("student read err = %v, want ErrOrganizationNotFound", err)
	}
	if _, err := svc.GetOrganization(context.Background(), models.RoleSuperAdmin, 10); err != nil {
		t.Errorf("super-admin read err = %v, want nil", err)
	}
}

func TestListOrganizationsHidesInactiveFromStudents(t *testing.T) {
	svc, store := newOrganizationFixture()
	store.seed(&models.Organization{ID: 1, Name: "Active", Slug: "active", Status: models.OrganizationActive})
	store.seed(&models.Organization{ID: 2, Name: "Suspended", Slug: "suspended", Status: models.OrganizationSuspended})

	orgs, total, err := svc.ListOrganizations(context.Background(), models.RoleStudent, &dto.OrganizationFilterRequest{}, 0, 20)
	if err != nil {
		t.Fatalf("ListOrganizations: %v", err)
	}
	if total != 1 || len(orgs) != 1 {
		t.Errorf("student sees %d orgs, want 1", len(orgs))
	}

	orgs, _, err = svc.ListOrganizations(context.Background(), models.RoleSuperAdmin, &dto.OrganizationFilterRequest{}, 0, 20)
	if err != nil {
		t.Fatalf("ListOrganizations: %v", err)
	}
	if len(orgs) != 2 {
		t.Errorf("super-admin sees %d orgs, want 2", len(orgs))
	}
}

func TestUpdateOrganizationStatusIsSuperAdminOnly(t *testing.T) {
	svc, store := newOrganizationFixture()
	store.seed(&models.Organization{ID: 10, Name: "Circle", Slug: "circle", Status: models.OrganizationActive})

	ownOrg := int64(10)
	admin := &models.User{ID: 5, RoleType: models.RoleOrgAdmin, OrganizationID: &ownOrg}

	status := string(models.OrganizationSuspended)
	_, err := svc.UpdateOrganization(context.Background(), admin, 10, &dto.UpdateOrganizationRequest{Status: &status})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("org-admin status change err = %v, want ErrPermissionDenied", err)
	}

	name := "Renamed Circle"
	updated, err := svc.UpdateOrganization(context.Background(), admin, 10, &dto.UpdateOrganizationRequest{Name: &name})
	if err != nil {
		t.Fatalf("org-admin rename: %v", err)
	}
	if updated.Name != "Renamed Circle" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestUpdateOrganizationCrossOrgRejected(t *testing.T) {
	svc, store := newOrganizationFixture()
	store.seed(&models.Organization{ID: 10, Name: "Circle", Slug: "circle", Status: models.OrganizationActive})

	otherOrg := int64(20)
	admin := &models.User{ID: 5, RoleType: models.RoleOrgAdmin, OrganizationID: &otherOrg}

	name := "Hijacked"
	_, err := svc.UpdateOrganization(context.Background(), admin, 10, &dto.UpdateOrganizationRequest{Name: &name})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestDeleteOrganizationSoftDeletes(t *testing.T) {
	svc, store := newOrganizationFixture()
	store.seed(&models.Organization{ID: 10, Name: "Circle", Slug: "circle", Status: models.OrganizationActive})

	superAdmin := &models.User{ID: 1, RoleType: models.RoleSuperAdmin}
	if err := svc.DeleteOrganization(context.Background(), superAdmin, 10); err != nil {
		t.Fatalf("DeleteOrganization: %v", err)
	}
	if store.byID[10].DeletedAt == nil {
		t.Error("organization row removed or not stamped, want soft delete")
	}

	ownOrg := int64(10)
	admin := &models.User{ID: 5, RoleType: models.RoleOrgAdmin, OrganizationID: &ownOrg}
	if err := svc.DeleteOrganization(context.Background(), admin, 10); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("org-admin delete err = %v, want ErrPermissionDenied", err)
	}
}
