package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	userdomain "pawtrails/internal/domain/user"
	"pawtrails/internal/transport/httpserver/middleware"
)

func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (*userdomain.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return nil, false
	}
	return u, true
}

// userByParam resolves the {uuid} path segment to a stored user and writes
// the error response itself on failure.
func (h *Handlers) userByParam(w http.ResponseWriter, r *http.Request) (*userdomain.User, bool) {
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))
	if uuid == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "uuid is required")
		return nil, false
	}

	u, err := h.Users.GetByUUID(r.Context(), uuid)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return nil, false
		}
		h.log.InternalError("users: get by uuid failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, false
	}
	return u, true
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type updateUserRequest struct {
	Email         *string  `json:"email"`
	Username      *string  `json:"username"`
	Password      *string  `json:"password"`
	OldPassword   *string  `json:"old_password"`
	FullName      *string  `json:"full_name"`
	HomeLongitude *float64 `json:"home_longitude"`
	HomeLatitude  *float64 `json:"home_latitude"`
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Users.Update(r.Context(), u.UUID, userdomain.UpdateInput{
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		OldPassword:   req.OldPassword,
		FullName:      req.FullName,
		HomeLongitude: req.HomeLongitude,
		HomeLatitude:  req.HomeLatitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidInput):
			h.log.BusinessError("users.update: validation failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("users.update: email taken", err, "user_uuid", u.UUID)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		case errors.Is(err, userdomain.ErrUsernameTaken):
			h.log.BusinessError("users.update: username taken", err, "user_uuid", u.UUID)
			writeError(w, http.StatusConflict, "username_taken", "username already registered")
		case errors.Is(err, userdomain.ErrOldPasswordMismatch):
			h.log.BusinessError("users.update: old password mismatch", err, "user_uuid", u.UUID)
			writeError(w, http.StatusBadRequest, "old_password_mismatch", "old password does not match")
		case errors.Is(err, userdomain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("users.update: update failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) DeleteMe(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Users.Delete(r.Context(), u.UUID); err != nil {
		h.log.InternalError("users.delete: delete failed", err, "user_uuid", u.UUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) MyDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	events, err := h.Dashboard.ForUser(r.Context(), u.UUID)
	if err != nil {
		h.log.InternalError("dashboard: build feed failed", err, "user_uuid", u.UUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	h.followOp(w, r, h.Users.Follow, "cannot follow")
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.followOp(w, r, h.Users.Unfollow, "cannot unfollow")
}

func (h *Handlers) followOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, followerUUID, followeeUUID string) (bool, error), failure string) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	target := strings.TrimSpace(r.URL.Query().Get("uuid"))
	if target == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "uuid is required")
		return
	}

	done, err := op(r.Context(), u.UUID, target)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.follow: edge op failed", err, "user_uuid", u.UUID, "target_uuid", target)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if !done {
		writeError(w, http.StatusBadRequest, "invalid_request", failure)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) MyFollowers(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.currentUser(w, r); ok {
		h.writeFollowers(w, r, u.UUID)
	}
}

func (h *Handlers) MyFollowing(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.currentUser(w, r); ok {
		h.writeFollowing(w, r, u.UUID)
	}
}

func (h *Handlers) MyPets(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.currentUser(w, r); ok {
		h.writeUserPets(w, r, u.UUID)
	}
}

func (h *Handlers) MyLocations(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.currentUser(w, r); ok {
		h.writeUserLocations(w, r, u.UUID)
	}
}

func (h *Handlers) MyFavorites(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.currentUser(w, r); ok {
		h.writeUserFavorites(w, r, u.UUID)
	}
}

func (h *Handlers) MyReviews(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.currentUser(w, r); ok {
		h.writeUserReviews(w, r, u.UUID)
	}
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	users, err := h.Users.List(r.Context(), skip, limit)
	if err != nil {
		h.log.InternalError("users.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		writeJSON(w, http.StatusOK, u)
	}
}

func (h *Handlers) UserFollowers(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		h.writeFollowers(w, r, u.UUID)
	}
}

func (h *Handlers) UserFollowing(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		h.writeFollowing(w, r, u.UUID)
	}
}

func (h *Handlers) UserPets(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		h.writeUserPets(w, r, u.UUID)
	}
}

func (h *Handlers) UserLocations(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		h.writeUserLocations(w, r, u.UUID)
	}
}

func (h *Handlers) UserFavorites(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		h.writeUserFavorites(w, r, u.UUID)
	}
}

func (h *Handlers) UserReviews(w http.ResponseWriter, r *http.Request) {
	if u, ok := h.userByParam(w, r); ok {
		h.writeUserReviews(w, r, u.UUID)
	}
}

func (h *Handlers) writeFollowers(w http.ResponseWriter, r *http.Request, uuid string) {
	users, err := h.Users.Followers(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("users.followers: list failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) writeFollowing(w http.ResponseWriter, r *http.Request, uuid string) {
	users, err := h.Users.Following(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("users.following: list failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) writeUserPets(w http.ResponseWriter, r *http.Request, uuid string) {
	pets, err := h.Pets.ListByOwner(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("users.pets: list failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

func (h *Handlers) writeUserLocations(w http.ResponseWriter, r *http.Request, uuid string) {
	locations, err := h.Locations.ListByCreator(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("users.locations: list failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Handlers) writeUserFavorites(w http.ResponseWriter, r *http.Request, uuid string) {
	locations, err := h.Locations.ListFavoritedBy(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("users.favorites: list failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Handlers) writeUserReviews(w http.ResponseWriter, r *http.Request, uuid string) {
	reviews, err := h.Reviews.ListByWriter(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("users.reviews: list failed", err, "user_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
