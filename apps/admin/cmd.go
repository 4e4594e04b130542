package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/campusly/campusly/core/rbac"
	"github.com/campusly/campusly/core/user"
	"github.com/campusly/campusly/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	migrateFunc      = database.Migrate  // mockable

	errHelp     = errors.New("help provided")
	errNoDB     = errors.New("no database configured")
	errBadRoles = errors.New("role matrix check failed")
)

type commandLine struct {
	db     *sql.DB // nil with the in-memory store
	usrSvc user.Service
	reg    *rbac.Registry
	out    io.Writer
}

// roleList collects a repeatable -role flag.
type roleList []string

func (rl *roleList) String() string {
	return strings.Join(*rl, ",")
}

func (rl *roleList) Set(role string) error {
	*rl = append(*rl, role)
	return nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                               - run goose migration command (up, down, status...)")
	fmt.Fprintln(cli.out, "  adduser -username USERNAME -email EMAIL [-role ROLE] - create or update a user")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME|EMAIL               - reset user's password")
	fmt.Fprintln(cli.out, "  roles [-check]                                       - print the role matrix")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	var addUserRoles roleList
	addUserCmd.Var(&addUserRoles, "role", "A role to grant the user. Repeat for several roles.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	rolesCmd := flag.NewFlagSet("roles", flag.ExitOnError)
	rolesCheck := rolesCmd.Bool("check", false, "Check that the matrix is well formed.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" && *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserUname, *addUserEmail, pwd, addUserRoles)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)

	case "roles":
		if err := rolesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.roles(*rolesCheck)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}
