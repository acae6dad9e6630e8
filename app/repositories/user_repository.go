package repositories

import (
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	q *orm.Query
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{q: orm.New(db)}
}

// FindByEmail looks up a user by their (case-normalised) email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user)
	return user, translate(err, "user")
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, translate(err, "user")
}

// FindByResetTokenHash returns the user holding a live (unexpired) reset
// token with the given digest.
func (r *UserRepository) FindByResetTokenHash(hash string, now time.Time) (models.User, error) {
	var user models.User
	err := r.q.Model(&models.User{}).
		Where("reset_token_hash = ? AND reset_expiry > ?", hash, now).
		First(&user)
	return user, translate(err, "reset token")
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return translate(r.q.Create(user), "user")
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return translate(r.q.Save(user), "user")
}

// All returns all users with pagination.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := r.q.Model(&models.User{}).GetWithPagination(&users, page, limit)
	return users, pagination, translate(err, "users")
}
