package rbac

import (
	"encoding/json"
	"sort"
)

// PermissionSet is an unordered set of permissions.
// The zero value is an empty set that is safe for reads.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAll reports whether every one of perms is in s. It is true for no perms.
func (s PermissionSet) HasAll(perms ...Permission) bool {
	for _, p := range perms {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

func (s PermissionSet) Len() int { return len(s) }

// Union returns a new set holding the elements of s and others.
func (s PermissionSet) Union(others ...PermissionSet) PermissionSet {
	size := len(s)
	for _, o := range others {
		size += len(o)
	}
	out := make(PermissionSet, size)
	out.add(s)
	for _, o := range others {
		out.add(o)
	}
	return out
}

func (s PermissionSet) add(o PermissionSet) {
	for p := range o {
		s[p] = struct{}{}
	}
}

func (s PermissionSet) IsSubsetOf(o PermissionSet) bool {
	if len(s) > len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

func (s PermissionSet) Equal(o PermissionSet) bool {
	return len(s) == len(o) && s.IsSubsetOf(o)
}

// Sorted returns the permissions of s in lexical order.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var perms []Permission
	if err := json.Unmarshal(data, &perms); err != nil {
		return err
	}
	*s = NewPermissionSet(perms...)
	return nil
}
