package models

import (
	"fmt"
	"strings"
)

// Permission is one capability tag a user can hold.
type Permission string

const (
	PermUser             Permission = "USER"
	PermAdmin            Permission = "ADMIN"
	PermItemCreate       Permission = "ITEMCREATE"
	PermItemUpdate       Permission = "ITEMUPDATE"
	PermItemDelete       Permission = "ITEMDELETE"
	PermPermissionUpdate Permission = "PERMISSIONUPDATE"
)

var allPermissions = map[Permission]bool{
	PermUser:             true,
	PermAdmin:            true,
	PermItemCreate:       true,
	PermItemUpdate:       true,
	PermItemDelete:       true,
	PermPermissionUpdate: true,
}

// ParsePermission validates a permission name.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToUpper(strings.TrimSpace(s)))
	if !allPermissions[p] {
		return "", fmt.Errorf("unknown permission %q", s)
	}
	return p, nil
}

// PermissionSet is the set of permissions a user holds. It is persisted as
// a single comma-joined column so it round-trips through every supported
// SQL driver without an array type.
type PermissionSet []Permission

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	for _, have := range s {
		if have == p {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains at least one of required.
// An empty required list is always satisfied.
func (s PermissionSet) HasAny(required ...Permission) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		if s.Has(want) {
			return true
		}
	}
	return false
}

// Strings returns the permission names.
func (s PermissionSet) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = string(p)
	}
	return out
}

func (s PermissionSet) column() string {
	return strings.Join(s.Strings(), ",")
}

func permissionSetFromColumn(raw string) PermissionSet {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	set := make(PermissionSet, 0, len(parts))
	for _, part := range parts {
		if p, err := ParsePermission(part); err == nil {
			set = append(set, p)
		}
	}
	return set
}
