package rbac

import (
	"github.com/pkg/errors"
)

// RoleDefinition is one row of the role to permission matrix.
type RoleDefinition struct {
	Role        Role         `mapstructure:"name" json:"name"`
	Permissions []Permission `mapstructure:"permissions" json:"permissions"`
}

// Registry is the immutable role to permission matrix.
type Registry struct {
	roles  []Role // definition order
	grants map[Role]PermissionSet
	all    PermissionSet // union of every role's grants
}

// NewRegistry builds a Registry from defs, keeping their order.
// Every role must be known, unique and grant at least one known permission.
func NewRegistry(defs ...RoleDefinition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrNoRoles
	}

	reg := &Registry{
		roles:  make([]Role, 0, len(defs)),
		grants: make(map[Role]PermissionSet, len(defs)),
		all:    make(PermissionSet),
	}
	for i, def := range defs {
		if def.Role == "" {
			return nil, errors.Wrapf(ErrEmptyRoleName, "role #%d", i)
		}
		if _, ok := ParseRole(string(def.Role)); !ok {
			return nil, errors.Wrapf(ErrUnknownRole, "%q", def.Role)
		}
		if _, dup := reg.grants[def.Role]; dup {
			return nil, errors.Wrapf(ErrDuplicateRole, "%q", def.Role)
		}
		if len(def.Permissions) == 0 {
			return nil, errors.Wrapf(ErrNoPermissions, "%q", def.Role)
		}
		for _, p := range def.Permissions {
			if _, ok := ParsePermission(string(p)); !ok {
				return nil, errors.Wrapf(ErrUnknownPermission, "%q granted to %q", p, def.Role)
			}
		}

		set := NewPermissionSet(def.Permissions...)
		reg.roles = append(reg.roles, def.Role)
		reg.grants[def.Role] = set
		reg.all.add(set)
	}
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(defs ...RoleDefinition) *Registry {
	reg, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return reg
}

// ListRoles returns every defined role in definition order.
func (r *Registry) ListRoles() []Role {
	out := make([]Role, len(r.roles))
	copy(out, r.roles)
	return out
}

// Defines reports whether name is a role of the registry.
func (r *Registry) Defines(name string) bool {
	_, ok := r.grants[Role(name)]
	return ok
}

// PermissionsForRole returns a copy of the permissions granted to role,
// or an empty set if role is not defined.
func (r *Registry) PermissionsForRole(role string) PermissionSet {
	return r.grants[Role(role)].Union()
}

// Definitions returns the matrix as RoleDefinitions, in definition order,
// with permissions sorted.
func (r *Registry) Definitions() []RoleDefinition {
	defs := make([]RoleDefinition, 0, len(r.roles))
	for _, role := range r.roles {
		defs = append(defs, RoleDefinition{Role: role, Permissions: r.grants[role].Sorted()})
	}
	return defs
}

// Check reports the first well-formedness violation of the matrix:
// a role granting nothing, or an admin role that is narrower than another role.
// A registry failing Check is still usable; admins resolve to every permission anyway.
func (r *Registry) Check() error {
	for _, role := range r.roles {
		if r.grants[role].Len() == 0 {
			return errors.Wrapf(ErrNoPermissions, "%q", role)
		}
	}

	admin, ok := r.grants[RoleAdmin]
	if !ok {
		return nil
	}
	for _, role := range r.roles {
		if role == RoleAdmin {
			continue
		}
		if !r.grants[role].IsSubsetOf(admin) {
			return errors.Wrapf(ErrAdminNotSuperset, "%q grants %v", role, missing(r.grants[role], admin))
		}
	}
	return nil
}

// missing returns the elements of s that are not in o.
func missing(s, o PermissionSet) []Permission {
	var out []Permission
	for _, p := range s.Sorted() {
		if !o.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
