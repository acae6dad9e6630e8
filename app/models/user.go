package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is the primary account model. Email is case-normalised to lowercase
// before every write, the password column only ever holds a bcrypt hash,
// and the reset token is stored as a SHA-256 digest so a leaked row cannot
// be replayed as a live token.
type User struct {
	gorm.Model
	Name           string     `gorm:"size:255;not null"             json:"name"`
	Email          string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password       string     `gorm:"size:255;not null"             json:"-"`
	RawPermissions string     `gorm:"column:permissions;size:255;default:USER" json:"-"`
	ResetTokenHash string     `gorm:"size:64"                       json:"-"`
	ResetExpiry    *time.Time `json:"-"`
}

// Permissions decodes the persisted permission column. Value receiver so it
// is callable on non-addressable values (type-assertion results, map reads).
func (u User) Permissions() PermissionSet {
	return permissionSetFromColumn(u.RawPermissions)
}

// SetPermissions replaces the persisted permission column.
func (u *User) SetPermissions(set PermissionSet) {
	u.RawPermissions = set.column()
}

// BeforeSave enforces the email-lowercase invariant at the ORM boundary,
// so no code path can persist a mixed-case address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// ClearResetToken wipes the single-use reset credential.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = ""
	u.ResetExpiry = nil
}
