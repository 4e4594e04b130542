package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusly/campusly/core/rbac"
	"github.com/campusly/campusly/core/user"
	inmemdb "github.com/campusly/campusly/storage/database/inmem"
)

func setup(t *testing.T, reg ...*rbac.Registry) (*commandLine, *bytes.Buffer) {
	t.Helper()

	r := rbac.Default()
	if len(reg) > 0 {
		r = reg[0]
	}
	out := new(bytes.Buffer)
	return &commandLine{
		db:     new(sql.DB), // never queried: migrations are mocked
		usrSvc: user.NewService(inmemdb.NewUserRepository(inmemdb.Open())),
		reg:    r,
		out:    out,
	}, out
}

// mockPassword makes readPasswordFunc return pwd for the duration of the test.
func mockPassword(t *testing.T, pwd string) {
	orig := readPasswordFunc
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, errors.Cause(err))
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_help(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}
	assert.Contains(t, out.String(), "Usage:")
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	orig := migrateFunc
	t.Cleanup(func() { migrateFunc = orig })
	migrateFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	t.Run("in-memory store", func(t *testing.T) {
		cli.db = nil
		assert.Equal(t, errNoDB, cli.run([]string{"admin", "migrate", "up"}))
	})
}

func Test_commandLine_addUser(t *testing.T) {
	cli, _ := setup(t)
	ctx := context.Background()

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "admin1"}, wantErr: errHelp},
		{name: "unknown role", args: []string{"adduser", "-username", "admin1", "-role", "janitor"}, pwd: "pwd", wantErr: rbac.ErrUnknownRole},
		{name: "create", args: []string{"adduser", "-username", "Admin1", "-email", "admin@campusly.test", "-role", "admin"}, pwd: "pwd"},
		{name: "update", args: []string{"adduser", "-email", "admin@campusly.test", "-role", "teacher", "-role", "student"}, pwd: "new-pwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(t, tt.pwd)
			tt.check(t, cli.run(append([]string{"admin"}, tt.args...)))
		})
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, "admin1")
	require.NoError(t, err)
	assert.Equal(t, "admin@campusly.test", usr.Email)
	assert.Equal(t, []string{"teacher", "student"}, usr.Roles)
	assert.True(t, usr.Active())
	assert.NoError(t, usr.CheckPassword("new-pwd"))

	users, err := cli.usrSvc.Query(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, _ := setup(t)

	usr, err := cli.usrSvc.Create(context.Background(), user.NewUser{
		Name: "User", Username: "awe", Email: "awe@campusly.test", Password: "mdr",
	})
	require.NoError(t, err)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "lol", wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, pwd: "lol"},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, pwd: "lmao"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(t, tt.pwd)
			err := cli.run(append([]string{"admin"}, tt.args...))
			tt.check(t, err)

			if err == nil {
				refreshed, err := cli.usrSvc.GetByID(context.Background(), usr.ID)
				require.NoError(t, err)
				assert.NoError(t, refreshed.CheckPassword(tt.pwd))
			}
		})
	}
}

func Test_commandLine_roles(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		cli, out := setup(t)
		require.NoError(t, cli.run([]string{"admin", "roles"}))
		assert.Contains(t, out.String(), "ROLE")
		assert.Contains(t, out.String(), "student")
		assert.Contains(t, out.String(), string(rbac.ManageSystemSettings))
		assert.NotContains(t, out.String(), "OK")
	})

	t.Run("check", func(t *testing.T) {
		cli, out := setup(t)
		require.NoError(t, cli.run([]string{"admin", "roles", "-check"}))
		assert.Contains(t, out.String(), "OK")
	})

	t.Run("check fails", func(t *testing.T) {
		reg := rbac.MustRegistry(
			rbac.RoleDefinition{Role: rbac.RoleTeacher, Permissions: []rbac.Permission{rbac.GradeSubmissions}},
			rbac.RoleDefinition{Role: rbac.RoleAdmin, Permissions: []rbac.Permission{rbac.ManageUsers}},
		)
		cli, out := setup(t, reg)
		err := cli.run([]string{"admin", "roles", "-check"})
		assert.Equal(t, errBadRoles, errors.Cause(err))

		// the narrow admin row is shown next to what admins resolve to
		assert.Contains(t, out.String(), "[manageUsers]")
		assert.Contains(t, out.String(), "[gradeSubmissions manageUsers]")
	})
}
