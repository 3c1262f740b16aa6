package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/smhome/internal/common"
)

const (
	detailEmailTaken   = "Email already registered"
	detailInvalidCreds = "Invalid credentials"
	detailUnauthorized = "Could not validate credentials"
	detailNotFound     = "Product not found"
	detailInternal     = "Internal server error"
)

// fail maps a service error onto the HTTP error taxonomy. Only unexpected
// errors are logged at error level; the client never sees their cause.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		h.unauthorized(w, r, err)
	case errors.Is(err, common.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, detailEmailTaken)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, detailInvalidCreds)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, detailNotFound)
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error(ctx, "request failed", "request_id", requestIDFrom(ctx), "err", err)
		writeError(w, http.StatusInternalServerError, detailInternal)
	}
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, cause error) {
	h.logger.Debug(r.Context(), "session rejected", "request_id", requestIDFrom(r.Context()), "cause", cause)
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeError(w, http.StatusUnauthorized, detailUnauthorized)
}

func (h *Handler) invalid(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnprocessableEntity, msg)
}
