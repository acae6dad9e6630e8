package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission(" itemcreate ")
	require.NoError(t, err)
	assert.Equal(t, PermItemCreate, p)

	_, err = ParsePermission("SUPERUSER")
	assert.Error(t, err)

	_, err = ParsePermission("")
	assert.Error(t, err)
}

func TestPermissionSetHasAny(t *testing.T) {
	set := PermissionSet{PermUser, PermItemUpdate}

	assert.True(t, set.Has(PermItemUpdate))
	assert.False(t, set.Has(PermAdmin))

	assert.True(t, set.HasAny(PermAdmin, PermItemUpdate))
	assert.False(t, set.HasAny(PermAdmin, PermItemDelete))
	assert.True(t, set.HasAny(), "empty requirement is always satisfied")
}

func TestPermissionColumnRoundTrip(t *testing.T) {
	var u User
	u.SetPermissions(PermissionSet{PermUser, PermAdmin})
	assert.Equal(t, "USER,ADMIN", u.RawPermissions)
	assert.Equal(t, PermissionSet{PermUser, PermAdmin}, u.Permissions())

	// Unknown tokens in a hand-edited column are dropped, not fatal.
	u.RawPermissions = "USER,BOGUS,ADMIN"
	assert.Equal(t, PermissionSet{PermUser, PermAdmin}, u.Permissions())

	u.RawPermissions = ""
	assert.Empty(t, u.Permissions())
}
