package rbac

import "github.com/pkg/errors"

// Registry construction errors. Checks never return errors.
var (
	ErrNoRoles           = errors.New("rbac: no roles defined")
	ErrEmptyRoleName     = errors.New("rbac: empty role name")
	ErrUnknownRole       = errors.New("rbac: unknown role")
	ErrDuplicateRole     = errors.New("rbac: duplicate role")
	ErrNoPermissions     = errors.New("rbac: role grants no permissions")
	ErrUnknownPermission = errors.New("rbac: unknown permission")
	ErrAdminNotSuperset  = errors.New("rbac: admin role is not a superset of every other role")
)
