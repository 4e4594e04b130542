package rbac

// HasRight reports whether roleNames grant perm. Admins pass for any perm,
// even one no role declares.
func (r *Registry) HasRight(roleNames []string, perm Permission) bool {
	if isAdmin(roleNames) {
		return true
	}
	return r.EffectivePermissions(roleNames).Has(perm)
}

// HasAllRights reports whether roleNames grant every one of perms.
// It is true when perms is empty.
func (r *Registry) HasAllRights(roleNames []string, perms ...Permission) bool {
	if len(perms) == 0 || isAdmin(roleNames) {
		return true
	}
	return r.EffectivePermissions(roleNames).HasAll(perms...)
}

// HasRole reports whether role is literally present in roleNames.
// Being an admin does not satisfy it.
func HasRole(roleNames []string, role Role) bool {
	for _, name := range roleNames {
		if name == string(role) {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether at least one of roles is present in roleNames.
// It is true when roles is empty.
func HasAnyRole(roleNames []string, roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if HasRole(roleNames, role) {
			return true
		}
	}
	return false
}
