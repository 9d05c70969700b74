package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/store"
)

// ReloadFunc is called after every change to the stored profiles so that new
// surfaces pick the change up.
type ReloadFunc func() error

// ProfileHandler handles HTTP requests for profile resources and delegates
// /api/profiles/{id}/thresholds to a ThresholdHandler.
type ProfileHandler struct {
	store      *store.Store
	thresholds *ThresholdHandler
	reload     ReloadFunc
	logger     *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler. reload and logger may be nil.
func NewProfileHandler(s *store.Store, reload ReloadFunc, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &ProfileHandler{
		store:  s,
		reload: reload,
		logger: logger.Named("api"),
	}
	h.thresholds = &ThresholdHandler{store: s, changed: h.changed}
	return h
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles, /api/profiles/{id} or
	// /api/profiles/{id}/thresholds
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]
	switch {
	case len(parts) == 1:
	case len(parts) == 2 && parts[1] == "thresholds":
		h.thresholds.serve(w, r, id)
		return
	default:
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type createProfileRequest struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Enabled    *bool             `json:"enabled"`
	Thresholds []store.Threshold `json:"thresholds"`
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Enabled *bool  `json:"enabled"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Enabled   bool   `json:"enabled"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

func toProfileResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Kind:      string(p.Kind),
		Enabled:   p.Enabled,
		CreatedAt: p.CreatedAt.Format(timeLayout),
		UpdatedAt: p.UpdatedAt.Format(timeLayout),
	}
}

// changed reloads the application profiles. A failed reload does not undo
// the stored change.
func (h *ProfileHandler) changed() {
	if h.reload == nil {
		return
	}
	if err := h.reload(); err != nil {
		h.logger.Error("failed to reload profiles", zap.Error(err))
	}
}

// nameTaken reports whether another profile already uses name.
func (h *ProfileHandler) nameTaken(name, exceptID string) (bool, error) {
	p, err := h.store.Profiles().GetByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.ID != exceptID, nil
}

// list handles GET /api/profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toProfileResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id}.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// create handles POST /api/profiles. Thresholds sent with the profile are
// validated before anything is stored.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	kind := store.ProfileKind(req.Kind)
	if kind == "" {
		kind = store.ProfileKindTap
	}
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid profile kind")
		return
	}

	if _, err := app.ThresholdsToOverrides(kind, req.Thresholds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid thresholds: "+err.Error())
		return
	}

	taken, err := h.nameTaken(req.Name, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "Profile name already in use")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	p := &store.Profile{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Kind:    kind,
		Enabled: enabled,
	}
	if err := h.store.Profiles().Create(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}
	if len(req.Thresholds) > 0 {
		if err := h.store.Thresholds().Replace(p.ID, req.Thresholds); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store thresholds")
			return
		}
	}

	h.changed()
	writeJSON(w, http.StatusCreated, toProfileResponse(p))
}

// update handles PUT /api/profiles/{id}. A kind change is refused when the
// stored thresholds do not fit the new kind.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" && req.Name != p.Name {
		taken, err := h.nameTaken(req.Name, p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if taken {
			writeError(w, http.StatusConflict, "Profile name already in use")
			return
		}
		p.Name = req.Name
	}

	if req.Kind != "" {
		kind := store.ProfileKind(req.Kind)
		if !kind.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid profile kind")
			return
		}
		if kind != p.Kind {
			thresholds, err := h.store.Thresholds().ListByProfile(p.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to load thresholds")
				return
			}
			if _, err := app.ThresholdsToOverrides(kind, thresholds); err != nil {
				writeError(w, http.StatusBadRequest, "Thresholds do not fit kind: "+err.Error())
				return
			}
			p.Kind = kind
		}
	}

	if req.Enabled != nil {
		p.Enabled = *req.Enabled
	}

	if err := h.store.Profiles().Update(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	h.changed()
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	h.changed()
	w.WriteHeader(http.StatusNoContent)
}
