package repositories

import (
	"errors"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"gorm.io/gorm"
)

// translate maps GORM errors onto the storefront error kinds so services
// never see driver-level errors directly.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.NotFound, what+" not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.ValidationFailed, what+" already exists", err)
	default:
		return apperr.Wrap(apperr.StoreUnavailable, "database error", err)
	}
}
