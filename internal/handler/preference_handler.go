package handler

import (
	"net/http"

	"github.com/sicurlav/vdtcheck/internal/service"
)

type PreferenceHandler struct {
	prefs *service.PreferenceService
	users service.UserStore
}

func NewPreferenceHandler(prefs *service.PreferenceService, users service.UserStore) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs, users: users}
}

// GetSelection returns the saved pick, or an empty object when the user has
// never selected anything.
func (h *PreferenceHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if user.Selection == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, user.Selection)
}

func (h *PreferenceHandler) SaveSelection(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		CompanyID string `json:"companyId"`
		SiteID    string `json:"siteId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyID == "" {
		writeError(w, http.StatusBadRequest, "companyId is required")
		return
	}
	sel, err := h.prefs.SaveSelection(r.Context(), user, req.CompanyID, req.SiteID)
	if err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sel)
}
