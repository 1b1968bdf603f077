package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sicurlav/vdtcheck/internal/service"
)

type AdminHandler struct {
	svc      *service.AdminService
	validate *validator.Validate
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc, validate: validator.New()}
}

func (h *AdminHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (h *AdminHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.svc.ListSites(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sites": sites})
}

type createCompanyRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

func (h *AdminHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	company, err := h.svc.CreateCompany(r.Context(), req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (h *AdminHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCompany(r.Context(), chi.URLParam(r, "companyId")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type createSiteRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
	Name      string `json:"name" validate:"required,min=2"`
	Address   string `json:"address"`
}

func (h *AdminHandler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req createSiteRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	site, err := h.svc.CreateSite(r.Context(), req.CompanyID, req.Name, req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

func (h *AdminHandler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSite(r.Context(), chi.URLParam(r, "siteId")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "total": len(users)})
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user super_admin"`
}

func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.SetRole(r.Context(), chi.URLParam(r, "userId"), req.Role); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type setAssignmentsRequest struct {
	CompanyIDs []string `json:"companyIds"`
	SiteIDs    []string `json:"siteIds"`
}

func (h *AdminHandler) SetAssignments(w http.ResponseWriter, r *http.Request) {
	var req setAssignmentsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SetAssignments(r.Context(), chi.URLParam(r, "userId"), req.CompanyIDs, req.SiteIDs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUser(r.Context(), chi.URLParam(r, "userId")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
