package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusly/campusly/core/rbac"
)

type roleApi struct {
	reg *rbac.Registry
}

func registerRoleAPI(g *echo.Group, jwt echo.MiddlewareFunc, grd *guard, reg *rbac.Registry) {
	api := roleApi{reg: reg}

	rg := g.Group("/roles", jwt)
	rg.GET("", api.query)
	rg.GET("/check", api.check, grd.requireAnyRole(rbac.RoleAdmin))
}

type (
	RoleResponse struct {
		Name                 rbac.Role          `json:"name"`
		Permissions          rbac.PermissionSet `json:"permissions"`
		EffectivePermissions rbac.PermissionSet `json:"effective_permissions"`
	}

	CheckResponse struct {
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
)

// query lists the roles with the rights each of them grants,
// and the rights a holder of each of them resolves to.
func (api *roleApi) query(ctx echo.Context) error {
	roles := api.reg.ListRoles()
	resp := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		resp = append(resp, RoleResponse{
			Name:                 role,
			Permissions:          api.reg.PermissionsForRole(role.String()),
			EffectivePermissions: api.reg.EffectivePermissions([]string{role.String()}),
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *roleApi) check(ctx echo.Context) error {
	if err := api.reg.Check(); err != nil {
		return ctx.JSON(http.StatusOK, CheckResponse{Error: err.Error()})
	}
	return ctx.JSON(http.StatusOK, CheckResponse{OK: true})
}
