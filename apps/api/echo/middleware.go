package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusly/campusly/core"
	"github.com/campusly/campusly/core/rbac"
	"github.com/campusly/campusly/core/user"
)

const contextObjectKey = "object"

// guard gates routes on the rights and roles of the authenticated user.
// It must run after the JWT middleware.
type guard struct {
	auth   *authenticator
	svc    user.Service
	reg    *rbac.Registry
	logger core.Logger
}

func (g *guard) deny(ctx echo.Context, usr user.User, required interface{}) error {
	g.logger.Warn("permission denied", map[string]interface{}{
		"method":   ctx.Request().Method,
		"path":     ctx.Path(),
		"required": required,
		"roles":    usr.Roles,
	}, usr)
	return errHttpForbidden
}

// requireRights lets the request through when the user holds every one of perms.
func (g *guard) requireRights(perms ...rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := g.auth.contextUser(ctx, g.svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !g.reg.HasAllRights(usr.Roles, perms...) {
				return g.deny(ctx, usr, perms)
			}
			return next(ctx)
		}
	}
}

// requireAnyRole lets the request through when the user literally holds one of roles.
func (g *guard) requireAnyRole(roles ...rbac.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := g.auth.contextUser(ctx, g.svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !rbac.HasAnyRole(usr.Roles, roles...) {
				return g.deny(ctx, usr, roles)
			}
			return next(ctx)
		}
	}
}

// selfOrRight loads the user of the `:id` path param into the context when it is
// the authenticated user or when the authenticated user holds perm.
// Anything else is reported as not found.
func (g *guard) selfOrRight(perm rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctxUsr, err := g.auth.contextUser(ctx, g.svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}

			id := ctx.Param("id")
			if id != ctxUsr.ID && !g.reg.HasRight(ctxUsr.Roles, perm) {
				return errHttpNotFound
			}

			usr, err := g.svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				return errors.Wrap(err, "finding user by ID")
			}
			ctx.Set(contextObjectKey, usr)
			return next(ctx)
		}
	}
}

// canGrant reports whether caller may hand out roles: the rights they
// resolve to must all be held by caller.
func (g *guard) canGrant(caller user.User, roles []string) bool {
	return g.reg.EffectivePermissions(roles).IsSubsetOf(g.reg.EffectivePermissions(caller.Roles))
}
