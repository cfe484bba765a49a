package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/filedrop/internal/models"
)

// Write переводит ошибку сервиса в HTTP-статус.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}

// Status возвращает HTTP-статус для ошибки сервиса.
func Status(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
