package service

import (
	"errors"
	"strconv"

	"github.com/guttakrutt/guildsite/internal/domain"
)

// wrapWrite converts a repository write failure into a domain error, keeping
// an already-typed AppError (write-verify failures, not-found) intact.
func wrapWrite(op string, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return domain.ErrInternal(op, err)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
