package inmemdb

import (
	"sync"

	"github.com/campusly/campusly/core/user"
)

type (
	// DB is a process-local store. Records are copied in and out.
	DB struct {
		user *userTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
)

func Open() *DB {
	return &DB{
		user: &userTable{table: make(map[string]*user.User)},
	}
}
