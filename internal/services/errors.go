package services

import (
	"errors"
	"fmt"

	"github.com/justsurfingit/ejobs/internal/apperr"
	"gorm.io/gorm"
)

// translate maps gorm sentinel errors onto API errors and wraps the rest.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(what + " already exists")
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
