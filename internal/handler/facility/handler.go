package facility

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	facilityService "github.com/carelane/carelane/backend/internal/service/facility"
	"github.com/carelane/carelane/backend/pkg/utils"
)

// Handler serves the nearby-facility lookup endpoint.
type Handler struct {
	svc *facilityService.Service
}

// New creates the facility handler.
func New(svc *facilityService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the facility routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/facilities", h.handleFacilities)
}

// handleFacilities proxies a nearby search for the requested facility type.
func (h *Handler) handleFacilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	typeKey := strings.ToLower(strings.TrimSpace(query.Get("type")))
	if typeKey == "" {
		typeKey = "hospital"
	}

	latRaw := query.Get("lat")
	lngRaw := query.Get("lng")
	if latRaw == "" || lngRaw == "" {
		utils.RespondError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil {
		utils.RespondError(w, http.StatusBadRequest, "lat and lng must be numeric")
		return
	}

	radius := facilityService.DefaultRadius
	if raw := query.Get("radius"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "radius must be an integer")
			return
		}
		radius = parsed
	}

	results, err := h.svc.Search(r.Context(), typeKey, lat, lng, radius)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, facilityService.ErrNoCredential) {
			status = http.StatusInternalServerError
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"type":    typeKey,
		"results": results,
	})
}
