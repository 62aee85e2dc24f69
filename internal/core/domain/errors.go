package domain

import (
	"errors"
	"fmt"
)

var (
	ErrExtraction            = errors.New("content extraction failed")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrPersistence           = errors.New("archive persistence failed")
	ErrRecordNotFound        = errors.New("archive record not found")
	ErrInvalidInput          = errors.New("invalid input")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
