package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	locationdomain "pawtrails/internal/domain/location"
	reviewdomain "pawtrails/internal/domain/review"
	tagdomain "pawtrails/internal/domain/tag"
	userdomain "pawtrails/internal/domain/user"
)

type createLocationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Size        string   `json:"size"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
}

type updateLocationRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Size        *string  `json:"size"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
}

type searchLocationRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Size     string  `json:"size"`
	MinGrade int     `json:"grade"`
	Created  bool    `json:"created_by_me"`
	Favorite bool    `json:"favorited_by_me"`
	Distance *struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
		MaxKm     float64 `json:"max_km"`
	} `json:"distance"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	locations, err := h.Locations.List(r.Context(), skip, limit)
	if err != nil {
		h.log.InternalError("locations.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	l, err := h.Locations.Create(r.Context(), u.UUID, locationdomain.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Size:        req.Size,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
	})
	if err != nil {
		if errors.Is(err, locationdomain.ErrInvalidInput) {
			h.log.BusinessError("locations.create: validation failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
			return
		}
		h.log.InternalError("locations.create: create failed", err, "user_uuid", u.UUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, l)
}

func (h *Handlers) SearchLocations(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req searchLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	opts := locationdomain.SearchOptions{
		Name:     req.Name,
		Type:     locationdomain.Type(req.Type),
		Size:     locationdomain.Size(req.Size),
		MinGrade: req.MinGrade,
		Skip:     req.Skip,
		Limit:    req.Limit,
	}
	if req.Created || req.Favorite {
		opts.User = &locationdomain.UserScope{
			UUID:      u.UUID,
			Created:   req.Created,
			Favorited: req.Favorite,
		}
	}
	if req.Distance != nil {
		opts.Distance = &locationdomain.DistanceScope{
			Longitude: req.Distance.Longitude,
			Latitude:  req.Distance.Latitude,
			MaxKm:     req.Distance.MaxKm,
		}
	}

	locations, err := h.Locations.Search(r.Context(), opts)
	if err != nil {
		if errors.Is(err, locationdomain.ErrInvalidInput) {
			h.log.BusinessError("locations.search: validation failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
			return
		}
		h.log.InternalError("locations.search: search failed", err, "user_uuid", u.UUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	l, err := h.Locations.GetByUUID(r.Context(), uuid)
	if err != nil {
		if errors.Is(err, locationdomain.ErrLocationNotFound) {
			writeError(w, http.StatusNotFound, "location_not_found", "location not found")
			return
		}
		h.log.InternalError("locations.get: get failed", err, "location_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handlers) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	var req updateLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	l, err := h.Locations.Update(r.Context(), u.UUID, uuid, locationdomain.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Size:        req.Size,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
	})
	if err != nil {
		h.writeLocationError(w, err, "locations.update", u.UUID, uuid)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handlers) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	if err := h.Locations.Delete(r.Context(), u.UUID, uuid); err != nil {
		h.writeLocationError(w, err, "locations.delete", u.UUID, uuid)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createReviewRequest struct {
	Comment string `json:"comment"`
	Grade   int    `json:"grade"`
}

type updateReviewRequest struct {
	Comment *string `json:"comment"`
	Grade   *int    `json:"grade"`
}

func (h *Handlers) ListLocationReviews(w http.ResponseWriter, r *http.Request) {
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	if _, err := h.Locations.GetByUUID(r.Context(), uuid); err != nil {
		h.writeLocationError(w, err, "reviews.list", "", uuid)
		return
	}

	reviews, err := h.Reviews.ListForLocation(r.Context(), uuid)
	if err != nil {
		h.log.InternalError("reviews.list: list failed", err, "location_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handlers) CreateLocationReview(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	rev, err := h.Reviews.Create(r.Context(), u.UUID, uuid, reviewdomain.CreateInput{
		Comment: req.Comment,
		Grade:   req.Grade,
	})
	if err != nil {
		h.writeReviewError(w, err, "reviews.create", u.UUID, uuid)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (h *Handlers) UpdateLocationReview(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	locationUUID := strings.TrimSpace(chi.URLParam(r, "uuid"))
	reviewUUID := strings.TrimSpace(chi.URLParam(r, "review_uuid"))
	if !h.reviewBelongsTo(w, r, locationUUID, reviewUUID) {
		return
	}

	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	rev, err := h.Reviews.Update(r.Context(), u.UUID, reviewUUID, reviewdomain.UpdateInput{
		Comment: req.Comment,
		Grade:   req.Grade,
	})
	if err != nil {
		h.writeReviewError(w, err, "reviews.update", u.UUID, reviewUUID)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *Handlers) DeleteLocationReview(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	locationUUID := strings.TrimSpace(chi.URLParam(r, "uuid"))
	reviewUUID := strings.TrimSpace(chi.URLParam(r, "review_uuid"))
	if !h.reviewBelongsTo(w, r, locationUUID, reviewUUID) {
		return
	}

	if err := h.Reviews.Delete(r.Context(), u.UUID, reviewUUID); err != nil {
		h.writeReviewError(w, err, "reviews.delete", u.UUID, reviewUUID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reviewBelongsTo rejects a review path whose review is not attached to the
// location named in the same path.
func (h *Handlers) reviewBelongsTo(w http.ResponseWriter, r *http.Request, locationUUID, reviewUUID string) bool {
	target, err := h.Reviews.LocationOf(r.Context(), reviewUUID)
	if err != nil {
		h.writeReviewError(w, err, "reviews.locate", "", reviewUUID)
		return false
	}
	if target == "" || target != locationUUID {
		writeError(w, http.StatusNotFound, "review_not_found", "review not found")
		return false
	}
	return true
}

func (h *Handlers) FavoriteLocation(w http.ResponseWriter, r *http.Request) {
	h.favoriteOp(w, r, h.Locations.AddFavorite, "location already favorited")
}

func (h *Handlers) UnfavoriteLocation(w http.ResponseWriter, r *http.Request) {
	h.favoriteOp(w, r, h.Locations.RemoveFavorite, "location is not favorited")
}

func (h *Handlers) favoriteOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userUUID, locationUUID string) (bool, error), failure string) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	done, err := op(r.Context(), u.UUID, uuid)
	if err != nil {
		h.writeLocationError(w, err, "locations.favorite", u.UUID, uuid)
		return
	}
	if !done {
		writeError(w, http.StatusBadRequest, "invalid_request", failure)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) TagLocation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	t, ok := h.tagByQuery(w, r)
	if !ok {
		return
	}

	added, err := h.Locations.AddTag(r.Context(), u.UUID, uuid, t.UUID)
	if err != nil {
		h.writeLocationError(w, err, "locations.tag", u.UUID, uuid)
		return
	}
	if !added {
		writeError(w, http.StatusConflict, "tag_exists", "location already carries this tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UntagLocation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	t, ok := h.tagByQuery(w, r)
	if !ok {
		return
	}

	removed, err := h.Locations.RemoveTag(r.Context(), u.UUID, uuid, t.UUID)
	if err != nil {
		h.writeLocationError(w, err, "locations.untag", u.UUID, uuid)
		return
	}
	if !removed {
		writeError(w, http.StatusConflict, "tag_missing", "location does not carry this tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) tagByQuery(w http.ResponseWriter, r *http.Request) (*tagdomain.Tag, bool) {
	tagUUID := strings.TrimSpace(r.URL.Query().Get("tag_uuid"))
	if tagUUID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "tag_uuid is required")
		return nil, false
	}

	t, err := h.Tags.GetByUUID(r.Context(), tagUUID)
	if err != nil {
		if errors.Is(err, tagdomain.ErrTagNotFound) {
			writeError(w, http.StatusNotFound, "tag_not_found", "tag not found")
			return nil, false
		}
		h.log.InternalError("locations.tag: get tag failed", err, "tag_uuid", tagUUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return nil, false
	}
	return t, true
}

func (h *Handlers) writeLocationError(w http.ResponseWriter, err error, op, userUUID, locationUUID string) {
	switch {
	case errors.Is(err, locationdomain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "location_not_found", "location not found")
	case errors.Is(err, userdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, locationdomain.ErrNotCreator):
		h.log.BusinessError(op+": not the creator", err, "user_uuid", userUUID, "location_uuid", locationUUID)
		writeError(w, http.StatusConflict, "not_creator", "you did not create this location")
	case errors.Is(err, locationdomain.ErrCreatorExists):
		h.log.BusinessError(op+": creator exists", err, "user_uuid", userUUID, "location_uuid", locationUUID)
		writeError(w, http.StatusConflict, "creator_exists", "location already has a creator")
	case errors.Is(err, locationdomain.ErrInvalidInput):
		h.log.BusinessError(op+": validation failed", err, "user_uuid", userUUID, "location_uuid", locationUUID)
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		h.log.InternalError(op+": failed", err, "user_uuid", userUUID, "location_uuid", locationUUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handlers) writeReviewError(w http.ResponseWriter, err error, op, userUUID, targetUUID string) {
	switch {
	case errors.Is(err, reviewdomain.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, "review_not_found", "review not found")
	case errors.Is(err, locationdomain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "location_not_found", "location not found")
	case errors.Is(err, userdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, reviewdomain.ErrNotWriter):
		h.log.BusinessError(op+": not the writer", err, "user_uuid", userUUID, "uuid", targetUUID)
		writeError(w, http.StatusConflict, "not_writer", "you did not write this review")
	case errors.Is(err, reviewdomain.ErrInvalidInput):
		h.log.BusinessError(op+": validation failed", err, "user_uuid", userUUID, "uuid", targetUUID)
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		h.log.InternalError(op+": failed", err, "user_uuid", userUUID, "uuid", targetUUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
