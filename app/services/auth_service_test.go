package services

import (
	"context"
	"strings"
	"testing"
	"time"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTokenFrom(t *testing.T, resetURL string) string {
	t.Helper()
	_, token, ok := strings.Cut(resetURL, "resetToken=")
	require.True(t, ok, "reset URL %q carries no token", resetURL)
	return token
}

func TestSignupCreatesSessionWithDefaultPermission(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &recordingMailer{})

	session, err := svc.Signup(SignupInput{
		Name:     "Ada",
		Email:    "Ada@Example.COM",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	// Email was lowercased on the way in.
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, models.PermissionSet{models.PermUser}, session.User.Permissions())

	// The token is a valid session for that user.
	claims, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	// Plaintext never hits the database.
	assert.NotContains(t, session.User.Password, "correct horse")
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &recordingMailer{})

	input := SignupInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse battery"}
	_, err := svc.Signup(input)
	require.NoError(t, err)

	_, err = svc.Signup(input)
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
}

func TestSigninDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &recordingMailer{})

	_, err := svc.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse battery"})
	require.NoError(t, err)

	_, wrongPass := svc.Signin("ada@example.com", "nope nope nope")
	_, unknownUser := svc.Signin("nobody@example.com", "nope nope nope")

	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(wrongPass))
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(unknownUser))
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())

	session, err := svc.Signin("ADA@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.User.Email)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewAuthService(db, mailer)

	_, err := svc.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "old password 123"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestReset("ada@example.com"))
	require.Len(t, mailer.urls, 1)
	token := resetTokenFrom(t, mailer.urls[0])

	// The raw token is never stored — only its digest.
	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.NotEqual(t, token, user.ResetTokenHash)
	assert.NotEmpty(t, user.ResetTokenHash)

	session, err := svc.ResetPassword(token, "new password 456", "new password 456")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.User.Email)

	// Old password dead, new one works.
	_, err = svc.Signin("ada@example.com", "old password 123")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	_, err = svc.Signin("ada@example.com", "new password 456")
	assert.NoError(t, err)

	// Single use: the same token is rejected the second time.
	_, err = svc.ResetPassword(token, "another password", "another password")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestPasswordResetValidation(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewAuthService(db, mailer)

	_, err := svc.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "old password 123"})
	require.NoError(t, err)

	_, err = svc.ResetPassword("whatever", "abcdefgh", "mismatch")
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))

	_, err = svc.ResetPassword("whatever", "short", "short")
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))

	_, err = svc.ResetPassword("not-a-real-token", "new password 456", "new password 456")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	assert.Equal(t, apperr.NotFound, apperr.KindOf(svc.RequestReset("nobody@example.com")))
}

func TestPasswordResetExpiry(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{}
	svc := NewAuthService(db, mailer)

	_, err := svc.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "old password 123"})
	require.NoError(t, err)
	require.NoError(t, svc.RequestReset("ada@example.com"))
	token := resetTokenFrom(t, mailer.urls[0])

	// Backdate the expiry past the window.
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "ada@example.com").
		Update("reset_expiry", &expired).Error)

	_, err = svc.ResetPassword(token, "new password 456", "new password 456")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestUpdatePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &recordingMailer{})

	admin := createUser(t, db, "admin@example.com", models.PermAdmin)
	manager := createUser(t, db, "manager@example.com", models.PermPermissionUpdate)
	target := createUser(t, db, "target@example.com")
	bystander := createUser(t, db, "bystander@example.com")

	_, err := svc.UpdatePermissions(context.Background(), target.ID, []string{"ADMIN"})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = svc.UpdatePermissions(as(bystander), target.ID, []string{"ADMIN"})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	_, err = svc.UpdatePermissions(as(admin), target.ID, []string{"SUPERUSER"})
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))

	updated, err := svc.UpdatePermissions(as(admin), target.ID, []string{"USER", "ITEMCREATE"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"USER", "ITEMCREATE"}, updated.Permissions().Strings())

	// PERMISSIONUPDATE alone is sufficient, ADMIN not required.
	updated, err = svc.UpdatePermissions(as(manager), target.ID, []string{"USER"})
	require.NoError(t, err)
	assert.Equal(t, models.PermissionSet{models.PermUser}, updated.Permissions())

	_, err = svc.UpdatePermissions(as(admin), 9999, []string{"USER"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestUsersListingGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, &recordingMailer{})

	admin := createUser(t, db, "admin@example.com", models.PermAdmin)
	pleb := createUser(t, db, "pleb@example.com")

	_, _, err := svc.Users(as(pleb), 1, 10)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	users, _, err := svc.Users(as(admin), 1, 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMailerFailureSurfaces(t *testing.T) {
	db := newTestDB(t)
	mailer := &recordingMailer{fail: assert.AnError}
	svc := NewAuthService(db, mailer)

	_, err := svc.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "old password 123"})
	require.NoError(t, err)

	assert.Error(t, svc.RequestReset("ada@example.com"))
}
