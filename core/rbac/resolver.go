package rbac

// EffectivePermissions returns the union of the permissions granted by roleNames.
//
// If roleNames contains RoleAdmin, the result is the union of every role's
// grants in the registry, not the admin row alone. Unknown names contribute
// nothing and an empty list yields an empty set.
func (r *Registry) EffectivePermissions(roleNames []string) PermissionSet {
	if isAdmin(roleNames) {
		return r.all.Union()
	}

	out := make(PermissionSet)
	for _, name := range roleNames {
		out.add(r.grants[Role(name)])
	}
	return out
}

func isAdmin(roleNames []string) bool {
	return HasRole(roleNames, RoleAdmin)
}
