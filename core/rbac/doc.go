// Package rbac holds the role to permission matrix of the platform and the
// checks every protected operation goes through.
//
// A Registry is built once at startup (Default, NewRegistry or LoadRegistry)
// and is read-only afterwards, so it can be shared by any number of
// goroutines without locking.
//
// Role lists reach this package from persisted user records and may hold
// names the registry no longer defines. Unknown role or permission names never
// cause an error here: they grant nothing and match nothing.
//
// A role list that contains RoleAdmin resolves to the union of every
// permission granted by any role of the registry, whatever the admin row
// itself lists.
package rbac
