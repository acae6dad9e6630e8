package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"USER", "ADMIN"})
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Permissions)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = ValidateToken("")
	assert.Error(t, err)
}

func TestSessionCookieLifecycle(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "sometoken")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "sometoken", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-enough")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-enough", hash)

	assert.True(t, CheckPassword(hash, "s3cret-enough"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
