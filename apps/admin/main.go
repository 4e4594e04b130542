package main

import (
	"fmt"
	"log"
	"os"

	"github.com/campusly/campusly/core"
	"github.com/campusly/campusly/core/rbac"
	"github.com/campusly/campusly/core/user"
	logsvc "github.com/campusly/campusly/services/logger"
	"github.com/campusly/campusly/storage/database"
	inmemdb "github.com/campusly/campusly/storage/database/inmem"
	sqlxrepos "github.com/campusly/campusly/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	reg, err := rbac.LoadRegistry(conf.RBAC.RolesFile)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading roles: %v", err), err)
	}

	cli := commandLine{reg: reg, out: os.Stdout}

	if conf.Database.InMemory {
		cli.usrSvc = user.NewService(inmemdb.NewUserRepository(inmemdb.Open()))
	} else {
		if err = database.CreateIfNotExist(conf); err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
		}
		defer func() { _ = db.Close() }()

		cli.db = db.DB
		cli.usrSvc = user.NewService(sqlxrepos.NewUserRepository(db))
	}

	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
