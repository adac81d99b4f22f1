package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	petdomain "pawtrails/internal/domain/pet"
	userdomain "pawtrails/internal/domain/user"
)

type createPetRequest struct {
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Energy int    `json:"energy"`
	Size   string `json:"size"`
}

type updatePetRequest struct {
	Name   *string `json:"name"`
	Breed  *string `json:"breed"`
	Energy *int    `json:"energy"`
	Size   *string `json:"size"`
}

func (h *Handlers) ListPets(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	pets, err := h.Pets.List(r.Context(), skip, limit)
	if err != nil {
		h.log.InternalError("pets.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, pets)
}

func (h *Handlers) CreatePet(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createPetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	p, err := h.Pets.Create(r.Context(), u.UUID, petdomain.CreateInput{
		Name:   req.Name,
		Breed:  req.Breed,
		Energy: req.Energy,
		Size:   req.Size,
	})
	if err != nil {
		if errors.Is(err, petdomain.ErrInvalidInput) {
			h.log.BusinessError("pets.create: validation failed", err, "user_uuid", u.UUID)
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
			return
		}
		h.log.InternalError("pets.create: create failed", err, "user_uuid", u.UUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) GetPet(w http.ResponseWriter, r *http.Request) {
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	p, err := h.Pets.GetByUUID(r.Context(), uuid)
	if err != nil {
		if errors.Is(err, petdomain.ErrPetNotFound) {
			writeError(w, http.StatusNotFound, "pet_not_found", "pet not found")
			return
		}
		h.log.InternalError("pets.get: get failed", err, "pet_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdatePet(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	var req updatePetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	p, err := h.Pets.Update(r.Context(), u.UUID, uuid, petdomain.UpdateInput{
		Name:   req.Name,
		Breed:  req.Breed,
		Energy: req.Energy,
		Size:   req.Size,
	})
	if err != nil {
		h.writePetError(w, err, "pets.update", u.UUID, uuid)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeletePet(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	if err := h.Pets.Delete(r.Context(), u.UUID, uuid); err != nil {
		h.writePetError(w, err, "pets.delete", u.UUID, uuid)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) PetOwners(w http.ResponseWriter, r *http.Request) {
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))

	owners, err := h.Pets.Owners(r.Context(), uuid)
	if err != nil {
		if errors.Is(err, petdomain.ErrPetNotFound) {
			writeError(w, http.StatusNotFound, "pet_not_found", "pet not found")
			return
		}
		h.log.InternalError("pets.owners: list failed", err, "pet_uuid", uuid)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, owners)
}

func (h *Handlers) AddPetOwner(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))
	ownerUUID := strings.TrimSpace(r.URL.Query().Get("user_uuid"))
	if ownerUUID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_uuid is required")
		return
	}

	added, err := h.Pets.AddOwner(r.Context(), u.UUID, uuid, ownerUUID)
	if err != nil {
		h.writePetError(w, err, "pets.add_owner", u.UUID, uuid)
		return
	}
	if !added {
		writeError(w, http.StatusConflict, "owner_exists", "user already owns this pet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) RemovePetOwner(w http.ResponseWriter, r *http.Request) {
	u, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	uuid := strings.TrimSpace(chi.URLParam(r, "uuid"))
	ownerUUID := strings.TrimSpace(r.URL.Query().Get("user_uuid"))
	if ownerUUID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_uuid is required")
		return
	}

	removed, petDeleted, err := h.Pets.RemoveOwner(r.Context(), u.UUID, uuid, ownerUUID)
	if err != nil {
		h.writePetError(w, err, "pets.remove_owner", u.UUID, uuid)
		return
	}
	if !removed {
		writeError(w, http.StatusConflict, "owner_missing", "user does not own this pet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed, "pet_deleted": petDeleted})
}

func (h *Handlers) writePetError(w http.ResponseWriter, err error, op, userUUID, petUUID string) {
	switch {
	case errors.Is(err, petdomain.ErrPetNotFound):
		writeError(w, http.StatusNotFound, "pet_not_found", "pet not found")
	case errors.Is(err, userdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, petdomain.ErrNotOwner):
		h.log.BusinessError(op+": not an owner", err, "user_uuid", userUUID, "pet_uuid", petUUID)
		writeError(w, http.StatusConflict, "not_owner", "you do not own this pet")
	case errors.Is(err, petdomain.ErrInvalidInput):
		h.log.BusinessError(op+": validation failed", err, "user_uuid", userUUID, "pet_uuid", petUUID)
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		h.log.InternalError(op+": failed", err, "user_uuid", userUUID, "pet_uuid", petUUID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
