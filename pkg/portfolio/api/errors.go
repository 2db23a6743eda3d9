package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// renderError maps typed service failures to status codes and a structured
// error body. Internal failures surface as a generic message; the cause
// only goes to the log.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status  int
		code    string
		message string
	)

	var validationErr *portfolio.ValidationError
	var storageErr *portfolio.StorageError

	switch {
	case errors.Is(err, portfolio.ErrNotFound):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case errors.As(err, &validationErr):
		status, code, message = http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, portfolio.ErrInvalidCredentials):
		status, code, message = http.StatusUnauthorized, "invalid_credentials", err.Error()
	case errors.Is(err, portfolio.ErrNoToken):
		status, code, message = http.StatusUnauthorized, "unauthorized", err.Error()
	case errors.Is(err, portfolio.ErrTokenInvalid):
		status, code, message = http.StatusForbidden, "forbidden", err.Error()
	case errors.As(err, &storageErr):
		slog.Error("storage failure", "op", storageErr.Op, "err", storageErr.Err)
		status, code, message = http.StatusInternalServerError, "storage_error", "storage operation failed"
	default:
		slog.Error("unexpected failure", "err", err)
		status, code, message = http.StatusInternalServerError, "internal_error", "an internal error occurred"
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
