package api

import (
	"errors"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/store"
)

// ThresholdHandler serves /api/profiles/{id}/thresholds.
type ThresholdHandler struct {
	store   *store.Store
	changed func()
}

type thresholdsRequest struct {
	Thresholds []store.Threshold `json:"thresholds"`
}

type thresholdsResponse struct {
	ProfileID  string            `json:"profile_id"`
	Thresholds []store.Threshold `json:"thresholds"`
}

func (h *ThresholdHandler) serve(w http.ResponseWriter, r *http.Request, profileID string) {
	p, err := h.store.Profiles().GetByID(profileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, p)
	case http.MethodPut:
		h.replace(w, r, p)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/profiles/{id}/thresholds.
func (h *ThresholdHandler) list(w http.ResponseWriter, p *store.Profile) {
	thresholds, err := h.store.Thresholds().ListByProfile(p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list thresholds")
		return
	}
	writeJSON(w, http.StatusOK, thresholdsResponse{ProfileID: p.ID, Thresholds: thresholds})
}

// replace handles PUT /api/profiles/{id}/thresholds. The whole list is
// checked against the schema of the profile kind before it replaces the
// stored one.
func (h *ThresholdHandler) replace(w http.ResponseWriter, r *http.Request, p *store.Profile) {
	var req thresholdsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Thresholds == nil {
		req.Thresholds = []store.Threshold{}
	}

	if _, err := app.ThresholdsToOverrides(p.Kind, req.Thresholds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid thresholds: "+err.Error())
		return
	}

	if err := h.store.Thresholds().Replace(p.ID, req.Thresholds); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to store thresholds")
		return
	}

	if h.changed != nil {
		h.changed()
	}
	writeJSON(w, http.StatusOK, thresholdsResponse{ProfileID: p.ID, Thresholds: req.Thresholds})
}
