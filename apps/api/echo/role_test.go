package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusly/campusly/core/rbac"
)

func Test_roleApi_query(t *testing.T) {
	app := setup(t)
	student := app.createUser(t, "Student", "student1", true, rbac.RoleStudent)

	var want []RoleResponse
	for _, def := range rbac.DefaultRoles() {
		perms := rbac.NewPermissionSet(def.Permissions...)
		want = append(want, RoleResponse{Name: def.Role, Permissions: perms, EffectivePermissions: perms})
	}

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errMissingToken)},
		{name: "any user", token: app.token(t, student), wantCode: http.StatusOK, wantData: marshallObj(t, want)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodGet, "/v1/roles", tt.token)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_roleApi_check(t *testing.T) {
	forbidden := marshallObj(t, httpErr{Error: "permission denied"})

	t.Run("default matrix", func(t *testing.T) {
		app := setup(t)
		admin := app.createUser(t, "Admin", "admin1", true, rbac.RoleAdmin)
		teacher := app.createUser(t, "Teacher", "teacher1", true, rbac.RoleTeacher)

		tests := []httpTest{
			{name: "admin", token: app.token(t, admin), wantCode: http.StatusOK, wantData: marshallObj(t, CheckResponse{OK: true})},
			{name: "teacher denied", token: app.token(t, teacher), wantCode: http.StatusForbidden, wantData: forbidden},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := app.do(http.MethodGet, "/v1/roles/check", tt.token)
				checkCodeAndData(t, tt, rec)
			})
		}
	})

	t.Run("role gate ignores rights", func(t *testing.T) {
		// every right, but not the admin role
		reg := rbac.MustRegistry(
			rbac.RoleDefinition{Role: rbac.RoleTeacher, Permissions: rbac.AllPermissions()},
			rbac.RoleDefinition{Role: rbac.RoleAdmin, Permissions: []rbac.Permission{rbac.ManageRoles}},
		)
		app := setupWithRegistry(t, reg)
		teacher := app.createUser(t, "Teacher", "teacher1", true, rbac.RoleTeacher)
		admin := app.createUser(t, "Admin", "admin1", true, rbac.RoleAdmin)

		rec := app.do(http.MethodGet, "/v1/roles/check", app.token(t, teacher))
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: forbidden}, rec)

		rec = app.do(http.MethodGet, "/v1/roles/check", app.token(t, admin))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ok":false`)
		assert.Contains(t, rec.Body.String(), rbac.ErrAdminNotSuperset.Error())

		// the listing shows the narrow admin row next to what admins resolve to
		all := rbac.NewPermissionSet(rbac.AllPermissions()...)
		want := []RoleResponse{
			{Name: rbac.RoleTeacher, Permissions: all, EffectivePermissions: all},
			{Name: rbac.RoleAdmin, Permissions: rbac.NewPermissionSet(rbac.ManageRoles), EffectivePermissions: all},
		}
		rec = app.do(http.MethodGet, "/v1/roles", app.token(t, admin))
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshallObj(t, want)}, rec)
	})
}
