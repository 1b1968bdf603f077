package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/service"
)

type AnalysisHandler struct {
	analysis *service.AnalysisService
	users    service.UserStore
}

func NewAnalysisHandler(analysis *service.AnalysisService, users service.UserStore) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, users: users}
}

func (h *AnalysisHandler) withUser(w http.ResponseWriter, r *http.Request, fn func(user *models.UserProfile) (any, error)) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	result, err := fn(user)
	if err != nil {
		if errors.Is(err, service.ErrScopeDenied) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// pathParam unescapes a chi URL parameter; worker and department names can
// carry spaces and accents.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// parseFilter reads the optional narrowing query parameters. Dates are plain
// days; "to" is inclusive of its whole day. Malformed dates are ignored.
func parseFilter(r *http.Request) service.Filter {
	q := r.URL.Query()
	f := service.Filter{
		CompanyID: q.Get("companyId"),
		SiteID:    q.Get("siteId"),
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.From = t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.To = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f
}

func (h *AnalysisHandler) Workers(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		workers, err := h.analysis.Workers(r.Context(), user, parseFilter(r))
		return map[string]any{"workers": workers}, err
	})
}

func (h *AnalysisHandler) WorkerTable(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		return h.analysis.WorkerTable(r.Context(), user, pathParam(r, "name"), parseFilter(r))
	})
}

func (h *AnalysisHandler) Departments(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		depts, err := h.analysis.Departments(r.Context(), user, parseFilter(r))
		return map[string]any{"departments": depts}, err
	})
}

func (h *AnalysisHandler) DepartmentTable(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		return h.analysis.DepartmentTable(r.Context(), user, pathParam(r, "name"), parseFilter(r))
	})
}

func (h *AnalysisHandler) SiteTable(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		return h.analysis.SiteTable(r.Context(), user, chi.URLParam(r, "siteId"), parseFilter(r))
	})
}

func (h *AnalysisHandler) CompanyTable(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		return h.analysis.CompanyTable(r.Context(), user, chi.URLParam(r, "companyId"), parseFilter(r))
	})
}

func (h *AnalysisHandler) CompareDepartments(w http.ResponseWriter, r *http.Request) {
	h.withUser(w, r, func(user *models.UserProfile) (any, error) {
		return h.analysis.CompareDepartments(r.Context(), user, parseFilter(r))
	})
}
