package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/sicurlav/vdtcheck/internal/auth"
	"github.com/sicurlav/vdtcheck/internal/handler"
	mw "github.com/sicurlav/vdtcheck/internal/middleware"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	questH *handler.QuestionnaireHandler,
	respH *handler.ResponseHandler,
	dashH *handler.DashboardHandler,
	prefH *handler.PreferenceHandler,
	analysisH *handler.AnalysisHandler,
	reportH *handler.ReportHandler,
	adminH *handler.AdminHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/register", authH.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Auth
			r.Get("/auth/me", authH.Me)

			// Checklist
			r.Get("/questionnaire", questH.Schema)
			r.Post("/responses", respH.Create)
			r.Get("/responses", respH.List)

			// Dashboard and pickers
			r.Get("/dashboard", dashH.Dashboard)
			r.Get("/companies", dashH.Companies)
			r.Get("/sites", dashH.Sites)
			r.Get("/preferences/selection", prefH.GetSelection)
			r.Put("/preferences/selection", prefH.SaveSelection)

			// Analysis
			r.Get("/analysis/workers", analysisH.Workers)
			r.Get("/analysis/workers/{name}", analysisH.WorkerTable)
			r.Get("/analysis/departments", analysisH.Departments)
			r.Get("/analysis/departments/compare", analysisH.CompareDepartments)
			r.Get("/analysis/departments/{name}", analysisH.DepartmentTable)
			r.Get("/analysis/sites/{siteId}", analysisH.SiteTable)
			r.Get("/analysis/companies/{companyId}", analysisH.CompanyTable)

			// PDF reports
			r.Get("/reports/worker/{name}", reportH.Worker)
			r.Get("/reports/department/{name}", reportH.Department)
			r.Get("/reports/site/{siteId}", reportH.Site)
			r.Get("/reports/company/{companyId}", reportH.Company)

			// Admin console
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSuperAdmin)

				r.Get("/admin/companies", adminH.ListCompanies)
				r.Post("/admin/companies", adminH.CreateCompany)
				r.Delete("/admin/companies/{companyId}", adminH.DeleteCompany)
				r.Get("/admin/sites", adminH.ListSites)
				r.Post("/admin/sites", adminH.CreateSite)
				r.Delete("/admin/sites/{siteId}", adminH.DeleteSite)
				r.Get("/admin/users", adminH.ListUsers)
				r.Put("/admin/users/{userId}/role", adminH.SetRole)
				r.Put("/admin/users/{userId}/assignments", adminH.SetAssignments)
				r.Delete("/admin/users/{userId}", adminH.DeleteUser)
			})
		})
	})

	return r
}
