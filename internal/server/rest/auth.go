package rest

import (
	"net/http"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, err.Error())
		return
	}

	user, err := h.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user signed up", "request_id", requestIDFrom(r.Context()), "user_id", user.ID)
	writeJSON(w, http.StatusOK, toUser(user))
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, err.Error())
		return
	}

	res, err := h.users.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		User:        toUser(res.User),
	})
}
