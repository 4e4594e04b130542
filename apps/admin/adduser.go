package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/campusly/campusly/core"
	"github.com/campusly/campusly/core/rbac"
	"github.com/campusly/campusly/core/user"
)

// addUser updates or creates an active user.User holding exactly roles.
func (cli *commandLine) addUser(name, uname, email, pwd string, roles []string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	roles = user.NormalizeRoles(roles)

	for _, role := range roles {
		if !cli.reg.Defines(role) {
			return errors.Wrapf(rbac.ErrUnknownRole, "%q", role)
		}
	}

	usr, err := cli.findUser(ctx, uname, email)
	switch {
	case errors.Cause(err) == user.ErrNotFound:
		if name == "" {
			name = uname
		}
		_, err = cli.usrSvc.Create(ctx, user.NewUser{
			Name:     name,
			Username: uname,
			Email:    email,
			Password: pwd,
			Roles:    roles,
		})
		return errors.Wrap(err, "creating user")
	case err != nil:
		return err
	}

	if name == "" {
		name = usr.Name
	}
	if uname == "" {
		uname = usr.Username
	}
	if email == "" {
		email = usr.Email
	}
	if usr, err = cli.usrSvc.Update(ctx, usr, user.UpdateUser{
		Name:     name,
		Username: uname,
		Email:    email,
		IsActive: boolPtr(true),
		Password: pwd,
	}); err != nil {
		return errors.Wrap(err, "updating user")
	}
	if _, err = cli.usrSvc.SetRoles(ctx, usr, roles); err != nil {
		return errors.Wrap(err, "setting user roles")
	}
	return nil
}

func (cli *commandLine) findUser(ctx context.Context, unames ...string) (user.User, error) {
	for _, uname := range unames {
		usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
		if err == nil || errors.Cause(err) != user.ErrNotFound {
			return usr, err
		}
	}
	return user.User{}, user.ErrNotFound
}

func boolPtr(b bool) *bool { return &b }
