package services

import (
	"sort"
	"strings"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
)

// validationError folds a field→message map from pkg/validate into one
// ValidationFailed error with a stable, user-readable message.
func validationError(errs map[string]string) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+errs[field])
	}
	return apperr.New(apperr.ValidationFailed, strings.Join(parts, "; "))
}
