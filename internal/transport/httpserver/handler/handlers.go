package handler

import (
	"net/http"

	"pawtrails/internal/auth"
	dashboarddomain "pawtrails/internal/domain/dashboard"
	locationdomain "pawtrails/internal/domain/location"
	petdomain "pawtrails/internal/domain/pet"
	reviewdomain "pawtrails/internal/domain/review"
	tagdomain "pawtrails/internal/domain/tag"
	userdomain "pawtrails/internal/domain/user"
	"pawtrails/pkg/logger"
)

type Handlers struct {
	Users     *userdomain.Service
	Pets      *petdomain.Service
	Locations *locationdomain.Service
	Reviews   *reviewdomain.Service
	Tags      *tagdomain.Service
	Dashboard *dashboarddomain.Service

	tokens *auth.Issuer
	log    logger.Logger
}

func New(
	users *userdomain.Service,
	pets *petdomain.Service,
	locations *locationdomain.Service,
	reviews *reviewdomain.Service,
	tags *tagdomain.Service,
	dashboard *dashboarddomain.Service,
	tokens *auth.Issuer,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:     users,
		Pets:      pets,
		Locations: locations,
		Reviews:   reviews,
		Tags:      tags,
		Dashboard: dashboard,
		tokens:    tokens,
		log:       log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
