// Package authz is the single authorization predicate for the gatekeeper
// backend. Every role-gated route consults Enforcer.Can(role, object, action)
// through the authorize middleware; no ad hoc role checks live at call sites.
package authz

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

//go:embed model.conf
var modelText string

// Objects the predicate knows about.
const (
	ObjectVisitors  = "visitors"
	ObjectFleet     = "fleet"
	ObjectSchedules = "schedules"
	ObjectReports   = "reports"
	ObjectDashboard = "dashboard"
	ObjectSettings  = "settings"
	ObjectUsers     = "users"
)

// Actions on those objects.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// Enforcer answers "may this role perform this action on this object".
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// NewEnforcer builds the in-memory policy. Policy rules live in code rather
// than a database: the role set is closed (admin, porteiro) and the facility
// runs a single tenant, so there is nothing to administer at runtime.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz.NewEnforcer: parse model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz.NewEnforcer: %w", err)
	}

	rules := [][]string{
		// Porteiro: full access to the day-to-day gate registers, read-only
		// settings. User management is admin territory.
		{domain.RolePorteiro, ObjectVisitors, ActionRead},
		{domain.RolePorteiro, ObjectVisitors, ActionWrite},
		{domain.RolePorteiro, ObjectFleet, ActionRead},
		{domain.RolePorteiro, ObjectFleet, ActionWrite},
		{domain.RolePorteiro, ObjectSchedules, ActionRead},
		{domain.RolePorteiro, ObjectSchedules, ActionWrite},
		{domain.RolePorteiro, ObjectReports, ActionRead},
		{domain.RolePorteiro, ObjectReports, ActionWrite},
		{domain.RolePorteiro, ObjectDashboard, ActionRead},
		{domain.RolePorteiro, ObjectSettings, ActionRead},
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("authz.NewEnforcer: add policies: %w", err)
	}

	// Admin inherits everything the porteiro can do, plus the admin-only
	// objects via the superuser match in the model.
	if _, err := e.AddGroupingPolicy(domain.RoleAdmin, domain.RolePorteiro); err != nil {
		return nil, fmt.Errorf("authz.NewEnforcer: add grouping: %w", err)
	}

	return &Enforcer{enforcer: e}, nil
}

// Can reports whether role may perform action on object.
func (e *Enforcer) Can(role, object, action string) bool {
	ok, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false
	}
	return ok
}
