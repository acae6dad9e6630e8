package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/crypt"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/validate"
	"gorm.io/gorm"
)

// resetTokenTTL is the reset-token validity window.
const resetTokenTTL = time.Hour

// resetTokenBytes is the entropy of the reset token (hex-encoded on the wire).
const resetTokenBytes = 20

// Mailer delivers account emails out-of-band. The production
// implementation enqueues jobs; tests substitute a recorder.
type Mailer interface {
	SendPasswordReset(email, name, resetURL string) error
}

// SignupInput is the signup mutation payload.
type SignupInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Session is a signed-in user plus the token the transport layer should
// set as an HTTP-only cookie.
type Session struct {
	User  models.User
	Token string
}

// AuthService owns signup, signin, password reset and permission updates.
type AuthService struct {
	users  *repositories.UserRepository
	mailer Mailer
}

func NewAuthService(db *gorm.DB, mailer Mailer) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db), mailer: mailer}
}

// Signup registers a new account with the default USER permission and
// signs it in.
func (s *AuthService) Signup(input SignupInput) (Session, error) {
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return Session{}, validationError(errs)
	}

	if _, err := s.users.FindByEmail(input.Email); err == nil {
		return Session{}, apperr.New(apperr.ValidationFailed, "That email is already in use")
	} else if apperr.KindOf(err) != apperr.NotFound {
		return Session{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: input.Name, Email: input.Email, Password: hash}
	user.SetPermissions(models.PermissionSet{models.PermUser})

	if err := s.users.Create(&user); err != nil {
		return Session{}, err
	}

	event.FireAsync("user.registered", user)
	return s.sessionFor(user)
}

// Signin verifies credentials. Unknown email and wrong password produce
// the same Unauthenticated answer.
func (s *AuthService) Signin(email, password string) (Session, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return Session{}, apperr.New(apperr.Unauthenticated, "Invalid email or password")
		}
		return Session{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return Session{}, apperr.New(apperr.Unauthenticated, "Invalid email or password")
	}

	return s.sessionFor(user)
}

// Me loads the account for the session in ctx.
func (s *AuthService) Me(ctx context.Context) (models.User, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return models.User{}, apperr.New(apperr.Unauthenticated, "Not signed in")
	}
	return s.users.FindByID(userID)
}

// RequestReset issues a single-use reset token: the random token travels
// only in the email link, the database keeps its SHA-256 digest.
func (s *AuthService) RequestReset(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	expiry := time.Now().Add(resetTokenTTL)
	user.ResetTokenHash = crypt.Hash(token)
	user.ResetExpiry = &expiry
	if err := s.users.Update(&user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset?resetToken=%s", config.FrontendURL(), token)
	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token. The token is looked up by digest
// within its validity window and cleared on success (single use), then the
// user is signed in with the new password.
func (s *AuthService) ResetPassword(token, password, confirm string) (Session, error) {
	if password != confirm {
		return Session{}, apperr.New(apperr.ValidationFailed, "Your passwords don't match")
	}
	if len(password) < 8 {
		return Session{}, apperr.New(apperr.ValidationFailed, "password: must be at least 8 characters")
	}

	user, err := s.users.FindByResetTokenHash(crypt.Hash(token), time.Now())
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return Session{}, apperr.New(apperr.NotFound, "This token is either invalid or expired")
		}
		return Session{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user.Password = hash
	user.ClearResetToken()
	if err := s.users.Update(&user); err != nil {
		return Session{}, err
	}

	return s.sessionFor(user)
}

// Users lists accounts for the permission-management screen. Requires
// ADMIN or PERMISSIONUPDATE.
func (s *AuthService) Users(ctx context.Context, page, limit int) ([]models.User, orm.Pagination, error) {
	if _, ok := middleware.UserID(ctx); !ok {
		return nil, orm.Pagination{}, apperr.New(apperr.Unauthenticated, "You must be signed in")
	}
	if !granted(ctx, models.PermAdmin, models.PermPermissionUpdate) {
		return nil, orm.Pagination{}, apperr.New(apperr.Forbidden, "You don't have permission to list users")
	}
	return s.users.All(page, limit)
}

// UpdatePermissions replaces a user's permission set. The caller must hold
// ADMIN or PERMISSIONUPDATE; the target may be any user.
func (s *AuthService) UpdatePermissions(ctx context.Context, targetID uint, permissions []string) (models.User, error) {
	if _, ok := middleware.UserID(ctx); !ok {
		return models.User{}, apperr.New(apperr.Unauthenticated, "You must be signed in")
	}
	if !granted(ctx, models.PermAdmin, models.PermPermissionUpdate) {
		return models.User{}, apperr.New(apperr.Forbidden, "You don't have permission to manage permissions")
	}

	set := make(models.PermissionSet, 0, len(permissions))
	for _, name := range permissions {
		p, err := models.ParsePermission(name)
		if err != nil {
			return models.User{}, apperr.Wrap(apperr.ValidationFailed, "invalid permission", err)
		}
		set = append(set, p)
	}

	user, err := s.users.FindByID(targetID)
	if err != nil {
		return models.User{}, err
	}

	user.SetPermissions(set)
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) sessionFor(user models.User) (Session, error) {
	token, err := auth.GenerateToken(user.ID, user.Permissions().Strings())
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return Session{User: user, Token: token}, nil
}
