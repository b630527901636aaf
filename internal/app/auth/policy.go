package auth

import (
	"github.com/mkowalczyk/campushub/internal/app/models"
)

// Entity identifies an access-controlled entity type
type Entity string

const (
	EntityEvent         Entity = "event"
	EntityOrganization  Entity = "organization"
	EntityUser          Entity = "user"
	EntityParticipation Entity = "participation"
)

// Operation identifies an access-controlled operation
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Decision is the outcome of a policy lookup
type Decision int

const (
	// Deny refuses the operation outright.
	Deny Decision = iota
	// Allow permits the operation without a record filter. For reads this
	// still excludes soft-deleted and non-visible records.
	Allow
	// AllowAll permits the operation with no visibility filter at all,
	// including soft-deleted records. Only meaningful for reads.
	AllowAll
	// AllowOwn permits the operation narrowed to the caller's own records:
	// their own user row, their own participation rows, or entities of their
	// own organization. The service layer applies the narrowing.
	AllowOwn
)

// Anonymous is the role used for unauthenticated callers.
const Anonymous models.RoleType = ""

type policyKey struct {
	entity Entity
	op     Operation
	role   models.RoleType
}

// policy is the access table: {Entity x Operation x Role} -> Decision.
// Missing keys mean Deny.
var policy = map[policyKey]Decision{
	// Event: readable by everyone, super-admin additionally sees soft-deleted;
	// any authenticated user may create; updates are super-admin or org-admin
	// scoped to their own organization's events; delete (soft) is super-admin only.
	{EntityEvent, OpRead, Anonymous}:               Allow,
	{EntityEvent, OpRead, models.RoleStudent}:      Allow,
	{EntityEvent, OpRead, models.RoleOrgAdmin}:     Allow,
	{EntityEvent, OpRead, models.RoleStaff}:        Allow,
	{EntityEvent, OpRead, models.RoleSuperAdmin}:   AllowAll,
	{EntityEvent, OpCreate, models.RoleStudent}:    Allow,
	{EntityEvent, OpCreate, models.RoleOrgAdmin}:   Allow,
	{EntityEvent, OpCreate, models.RoleStaff}:      Allow,
	{EntityEvent, OpCreate, models.RoleSuperAdmin}: Allow,
	{EntityEvent, OpUpdate, models.RoleOrgAdmin}:   AllowOwn,
	{EntityEvent, OpUpdate, models.RoleSuperAdmin}: Allow,
	{EntityEvent, OpDelete, models.RoleSuperAdmin}: Allow,

	// Organization: active & non-deleted visible to everyone, super-admin sees
	// all; creation is staff or super-admin; updates super-admin or org-admin
	// for their own organization; delete (soft) super-admin only.
	{EntityOrganization, OpRead, Anonymous}:               Allow,
	{EntityOrganization, OpRead, models.RoleStudent}:      Allow,
	{EntityOrganization, OpRead, models.RoleOrgAdmin}:     Allow,
	{EntityOrganization, OpRead, models.RoleStaff}:        Allow,
	{EntityOrganization, OpRead, models.RoleSuperAdmin}:   AllowAll,
	{EntityOrganization, OpCreate, models.RoleStaff}:      Allow,
	{EntityOrganization, OpCreate, models.RoleSuperAdmin}: Allow,
	{EntityOrganization, OpUpdate, models.RoleOrgAdmin}:   AllowOwn,
	{EntityOrganization, OpUpdate, models.RoleSuperAdmin}: Allow,
	{EntityOrganization, OpDelete, models.RoleSuperAdmin}: Allow,

	// User: public read, public create (self-registration); updates are self
	// or super-admin; delete super-admin only. The role field itself is gated
	// separately, see CanSetRole.
	{EntityUser, OpRead, Anonymous}:               Allow,
	{EntityUser, OpRead, models.RoleStudent}:      Allow,
	{EntityUser, OpRead, models.RoleOrgAdmin}:     Allow,
	{EntityUser, OpRead, models.RoleStaff}:        Allow,
	{EntityUser, OpRead, models.RoleSuperAdmin}:   Allow,
	{EntityUser, OpCreate, Anonymous}:             Allow,
	{EntityUser, OpCreate, models.RoleStudent}:    Allow,
	{EntityUser, OpCreate, models.RoleOrgAdmin}:   Allow,
	{EntityUser, OpCreate, models.RoleStaff}:      Allow,
	{EntityUser, OpCreate, models.RoleSuperAdmin}: Allow,
	{EntityUser, OpUpdate, models.RoleStudent}:    AllowOwn,
	{EntityUser, OpUpdate, models.RoleOrgAdmin}:   AllowOwn,
	{EntityUser, OpUpdate, models.RoleStaff}:      AllowOwn,
	{EntityUser, OpUpdate, models.RoleSuperAdmin}: Allow,
	{EntityUser, OpDelete, models.RoleSuperAdmin}: Allow,

	// Participation: public read (participant counts), create for any
	// authenticated user, mutation by the row owner or super-admin.
	{EntityParticipation, OpRead, Anonymous}:               Allow,
	{EntityParticipation, OpRead, models.RoleStudent}:      Allow,
	{EntityParticipation, OpRead, models.RoleOrgAdmin}:     Allow,
	{EntityParticipation, OpRead, models.RoleStaff}:        Allow,
	{EntityParticipation, OpRead, models.RoleSuperAdmin}:   Allow,
	{EntityParticipation, OpCreate, models.RoleStudent}:    Allow,
	{EntityParticipation, OpCreate, models.RoleOrgAdmin}:   Allow,
	{EntityParticipation, OpCreate, models.RoleStaff}:      Allow,
	{EntityParticipation, OpCreate, models.RoleSuperAdmin}: Allow,
	{EntityParticipation, OpUpdate, models.RoleStudent}:    AllowOwn,
	{EntityParticipation, OpUpdate, models.RoleOrgAdmin}:   AllowOwn,
	{EntityParticipation, OpUpdate, models.RoleStaff}:      AllowOwn,
	{EntityParticipation, OpUpdate, models.RoleSuperAdmin}: Allow,
	{EntityParticipation, OpDelete, models.RoleStudent}:    AllowOwn,
	{EntityParticipation, OpDelete, models.RoleOrgAdmin}:   AllowOwn,
	{EntityParticipation, OpDelete, models.RoleStaff}:      AllowOwn,
	{EntityParticipation, OpDelete, models.RoleSuperAdmin}: Allow,
}

// Evaluate looks up the access decision for a role performing an operation on
// an entity type. Pure function of its inputs.
func Evaluate(entity Entity, op Operation, role models.RoleType) Decision {
	return policy[policyKey{entity, op, role}]
}

// CanUpdateEvent reports whether the caller may update the given event.
func CanUpdateEvent(caller *models.User, event *models.Event) bool {
	switch Evaluate(EntityEvent, OpUpdate, caller.RoleType) {
	case Allow:
		return true
	case AllowOwn:
		return caller.BelongsTo(event.OrganizationID)
	}
	return false
}

// CanUpdateOrganization reports whether the caller may update the given organization.
func CanUpdateOrganization(caller *models.User, organizationID int64) bool {
	switch Evaluate(EntityOrganization, OpUpdate, caller.RoleType) {
	case Allow:
		return true
	case AllowOwn:
		return caller.BelongsTo(organizationID)
	}
	return false
}

// CanUpdateUser reports whether the caller may update the given user record.
func CanUpdateUser(caller *models.User, targetUserID int64) bool {
	switch Evaluate(EntityUser, OpUpdate, caller.RoleType) {
	case Allow:
		return true
	case AllowOwn:
		return caller.ID == targetUserID
	}
	return false
}

// CanSetRole reports whether the caller may set or change a user's role.
// Only super-admins may, even on otherwise-permitted updates.
func CanSetRole(caller *models.User) bool {
	return caller.RoleType == models.RoleSuperAdmin
}

// CanViewRoster reports whether the caller may view an event's participant
// roster: super-admin, or an org-admin whose organization hosts the event.
func CanViewRoster(caller *models.User, event *models.Event) bool {
	if caller.RoleType == models.RoleSuperAdmin {
		return true
	}
	return caller.RoleType == models.RoleOrgAdmin && caller.BelongsTo(event.OrganizationID)
}
