package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/report"
	"github.com/sicurlav/vdtcheck/internal/service"
)

type ReportHandler struct {
	analysis *service.AnalysisService
	users    service.UserStore
}

func NewReportHandler(analysis *service.AnalysisService, users service.UserStore) *ReportHandler {
	return &ReportHandler{analysis: analysis, users: users}
}

func (h *ReportHandler) Worker(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	h.serve(w, r, report.ScopeWorker, name, func(user *models.UserProfile) (*service.ComparisonTable, error) {
		return h.analysis.WorkerTable(r.Context(), user, name, service.Filter{})
	})
}

func (h *ReportHandler) Department(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	h.serve(w, r, report.ScopeDepartment, name, func(user *models.UserProfile) (*service.ComparisonTable, error) {
		return h.analysis.DepartmentTable(r.Context(), user, name, service.Filter{})
	})
}

func (h *ReportHandler) Site(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.ScopeSite, "", func(user *models.UserProfile) (*service.ComparisonTable, error) {
		return h.analysis.SiteTable(r.Context(), user, chi.URLParam(r, "siteId"), service.Filter{})
	})
}

func (h *ReportHandler) Company(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.ScopeCompany, "", func(user *models.UserProfile) (*service.ComparisonTable, error) {
		return h.analysis.CompanyTable(r.Context(), user, chi.URLParam(r, "companyId"), service.Filter{})
	})
}

// serve renders the table as a PDF attachment. When identifier is empty the
// table title (site or company name) names the file.
func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, scope report.Scope, identifier string, load func(user *models.UserProfile) (*service.ComparisonTable, error)) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	table, err := load(user)
	if err != nil {
		if errors.Is(err, service.ErrScopeDenied) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	now := time.Now()
	pdfBytes, err := report.Build(table, scope, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if identifier == "" {
		identifier = table.Title
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, report.Filename(scope, identifier, now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
