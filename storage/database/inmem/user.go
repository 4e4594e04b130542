package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusly/campusly/core"
	"github.com/campusly/campusly/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func clone(usr user.User) user.User {
	if usr.Roles != nil {
		roles := make([]string, len(usr.Roles))
		copy(roles, usr.Roles)
		usr.Roles = roles
	}
	if usr.IsActive != nil {
		active := *usr.IsActive
		usr.IsActive = &active
	}
	return usr
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, clone(*u))
	}
	return users
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username, email string, excludedUsers ...user.User) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]struct{}, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded[u.ID] = struct{}{}
	}

	for _, usr := range repo.db.table {
		if _, ok := excluded[usr.ID]; ok {
			continue
		}
		if username != "" && usr.Username == username {
			return user.ErrUsernameExists
		}
		if email != "" && usr.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr = clone(usr)
	usr.ID = uuid.New().String()
	repo.db.table[usr.ID] = &usr
	return clone(usr), nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.query()
	if filter != nil {
		filtered := users[:0]
		for _, u := range users {
			if matches(u, filter) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	sortUsers(users, ordering)
	return users, nil
}

func matches(u user.User, filter *user.QueryFilter) bool {
	// users with search keyword matching any Name, Username or Email
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Name), search) {
			return false
		}
	}
	// users with any of the specified roles
	if len(filter.Roles) > 0 {
		var found bool
		for _, r := range filter.Roles {
			for _, ur := range u.Roles {
				if ur == r {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	if filter.IsActive != nil && u.Active() != *filter.IsActive {
		return false
	}
	if !filter.CreatedFrom.IsZero() && u.CreatedAt.Before(filter.CreatedFrom.UTC()) {
		return false
	}
	if !filter.CreatedTo.IsZero() && u.CreatedAt.After(filter.CreatedTo.UTC()) {
		return false
	}
	return true
}

// orderable user fields
var orderFields = map[string]struct{}{
	"name":       {},
	"username":   {},
	"email":      {},
	"is_active":  {},
	"created_at": {},
	"updated_at": {},
	"last_login": {},
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

func sortUsers(users []user.User, ordering []core.DBOrdering) {
	less := func(a, b user.User, field string) int {
		var x, y string
		switch field {
		case "name":
			x, y = a.Name, b.Name
		case "username":
			x, y = a.Username, b.Username
		case "email":
			x, y = a.Email, b.Email
		case "created_at":
			return compareTimes(a.CreatedAt, b.CreatedAt)
		case "updated_at":
			return compareTimes(a.UpdatedAt, b.UpdatedAt)
		case "last_login":
			// never logged in sorts like NULL in postgres: after every login
			switch {
			case a.LastLogin.IsZero() && b.LastLogin.IsZero():
				return 0
			case a.LastLogin.IsZero():
				return 1
			case b.LastLogin.IsZero():
				return -1
			}
			return compareTimes(a.LastLogin, b.LastLogin)
		case "is_active":
			switch {
			case a.Active() == b.Active():
				return 0
			case b.Active():
				return -1
			}
			return 1
		}
		return strings.Compare(x, y)
	}

	known := make([]core.DBOrdering, 0, len(ordering))
	for _, ord := range ordering {
		if _, ok := orderFields[ord.Field]; ok {
			known = append(known, ord)
		}
	}
	ordering = known
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}} // newest first
	}
	sort.SliceStable(users, func(i, j int) bool {
		for _, ord := range ordering {
			c := less(users[i], users[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return users[i].ID < users[j].ID
	})
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.table[filter.ID]; ok {
			return clone(*usr), nil
		}
		return user.User{}, user.ErrNotFound
	}

	for _, uname := range filter.UsernameOrEmail {
		if uname == "" {
			continue
		}
		for _, usr := range repo.db.table {
			if usr.Username == uname || usr.Email == uname {
				return clone(*usr), nil
			}
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	usr = clone(usr)
	repo.db.table[usr.ID] = &usr
	return clone(usr), nil
}

func (repo *userRepository) DeleteUsers(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
