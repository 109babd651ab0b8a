package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/avolkonsky/taskboard-api/internal/repo"
	"github.com/avolkonsky/taskboard-api/internal/service"
	"github.com/avolkonsky/taskboard-api/pkg/respond"
)

// handleErrors maps service and repo sentinels to status codes. The
// forbidden/not-found distinction is kept on purpose; existing clients
// rely on it.
func handleErrors(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	case errors.Is(err, service.ErrUnauthenticated):
		respond.Error(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrForbidden):
		respond.Error(w, r, http.StatusForbidden, "forbidden")
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
