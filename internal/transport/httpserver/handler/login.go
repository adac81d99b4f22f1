package handler

import (
	"errors"
	"net/http"

	userdomain "pawtrails/internal/domain/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	u, err := h.Users.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidInput):
			h.log.BusinessError("register: validation failed", err, "email", req.Email)
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("register: email taken", err, "email", req.Email)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		case errors.Is(err, userdomain.ErrUsernameTaken):
			h.log.BusinessError("register: username taken", err, "username", req.Username)
			writeError(w, http.StatusConflict, "username_taken", "username already registered")
		default:
			h.log.InternalError("register: create user failed", err, "email", req.Email)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// Login accepts the OAuth2 password form: username carries the email.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	u, err := h.Users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("login: invalid credentials", err, "email", email)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect email or password")
			return
		}
		h.log.InternalError("login: authenticate failed", err, "email", email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	token, err := h.tokens.Issue(u.UUID)
	if err != nil {
		h.log.InternalError("login: issue token failed", err, "user_uuid", u.UUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
