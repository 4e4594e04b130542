package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
)

// roles prints every role with the rights it grants and the rights its holders resolve to.
func (cli *commandLine) roles(check bool) error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROLE\tGRANTS\tEFFECTIVE")
	for _, role := range cli.reg.ListRoles() {
		grants := cli.reg.PermissionsForRole(role.String())
		effective := cli.reg.EffectivePermissions([]string{role.String()})
		fmt.Fprintf(w, "%s\t%v\t%v\n", role, grants.Sorted(), effective.Sorted())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !check {
		return nil
	}
	if err := cli.reg.Check(); err != nil {
		return errors.Wrap(errBadRoles, err.Error())
	}
	fmt.Fprintln(cli.out, "OK")
	return nil
}
