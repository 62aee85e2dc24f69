package httpadapter

import (
	"net/http"

	"github.com/dkrasnov/docvault/internal/core/domain"
)

func statusFromError(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
