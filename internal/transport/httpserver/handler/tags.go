package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	tagdomain "pawtrails/internal/domain/tag"
)

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	tags, err := h.Tags.List(r.Context(), skip, limit)
	if err != nil {
		h.log.InternalError("tags.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	t, err := h.Tags.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, tagdomain.ErrInvalidInput):
			h.log.BusinessError("tags.create: validation failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		case errors.Is(err, tagdomain.ErrNameTaken):
			h.log.BusinessError("tags.create: name taken", err, "user_uuid", u.UUID, "name", req.Name)
			writeError(w, http.StatusConflict, "tag_name_taken", "tag name already exists")
		default:
			h.log.InternalError("tags.create: create failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	if err := h.Tags.Delete(r.Context(), uuid); err != nil {
		if errors.Is(err, tagdomain.ErrTagNotFound) {
			writeError(w, http.StatusNotFound, "tag_not_found", "tag not found")
			return
		}
		h.log.InternalError("tags.delete: delete failed", err, "user_uuid", u.UUID, "tag_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
