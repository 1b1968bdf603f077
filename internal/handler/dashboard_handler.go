package handler

import (
	"net/http"

	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/service"
)

type DashboardHandler struct {
	analysis *service.AnalysisService
	scope    *service.ScopeService
	users    service.UserStore
}

func NewDashboardHandler(analysis *service.AnalysisService, scope *service.ScopeService, users service.UserStore) *DashboardHandler {
	return &DashboardHandler{analysis: analysis, scope: scope, users: users}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := h.analysis.Dashboard(r.Context(), user, parseFilter(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Companies lists the companies visible to the caller, for the pickers.
func (h *DashboardHandler) Companies(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	companies, err := h.scope.VisibleCompanies(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

// Sites lists visible sites, optionally restricted to one company via the
// companyId query parameter.
func (h *DashboardHandler) Sites(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sites, err := h.scope.VisibleSites(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if companyID := r.URL.Query().Get("companyId"); companyID != "" {
		filtered := sites[:0]
		for _, s := range sites {
			if s.CompanyID == companyID {
				filtered = append(filtered, s)
			}
		}
		sites = filtered
	}
	if sites == nil {
		sites = []models.CompanySite{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sites": sites})
}
