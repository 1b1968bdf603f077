package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicurlav/vdtcheck/internal/handler"
	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/questionnaire"
	"github.com/sicurlav/vdtcheck/internal/router"
	"github.com/sicurlav/vdtcheck/internal/service"
)

const testSecret = "handler-test-secret"

// Map-backed stores, enough to drive the whole router in tests.

type memUsers struct{ m map[string]models.UserProfile }

func (s *memUsers) FindByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	for _, u := range s.m {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
func (s *memUsers) FindByID(_ context.Context, id string) (*models.UserProfile, error) {
	u, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
func (s *memUsers) Create(_ context.Context, u *models.UserProfile) error {
	s.m[u.UserID] = *u
	return nil
}
func (s *memUsers) List(_ context.Context) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, u := range s.m {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
func (s *memUsers) UpdateRole(_ context.Context, id, role string) error {
	u := s.m[id]
	u.Role = role
	s.m[id] = u
	return nil
}
func (s *memUsers) UpdateAssignments(_ context.Context, id string, companyIDs, siteIDs []string) error {
	u := s.m[id]
	u.CompanyIDs, u.SiteIDs = companyIDs, siteIDs
	s.m[id] = u
	return nil
}
func (s *memUsers) UpdateSelection(_ context.Context, id string, sel *models.Selection) error {
	u := s.m[id]
	u.Selection = sel
	s.m[id] = u
	return nil
}
func (s *memUsers) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

type memCompanies struct {
	m map[string]models.Company
	n int
}

func (s *memCompanies) Create(_ context.Context, c *models.Company) (string, error) {
	s.n++
	id := fmt.Sprintf("c%d", s.n)
	cc := *c
	cc.ID = id
	s.m[id] = cc
	return id, nil
}
func (s *memCompanies) FindByID(_ context.Context, id string) (*models.Company, error) {
	c, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
func (s *memCompanies) List(_ context.Context) ([]models.Company, error) {
	var out []models.Company
	for _, c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *memCompanies) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

type memSites struct {
	m map[string]models.CompanySite
	n int
}

func (s *memSites) Create(_ context.Context, site *models.CompanySite) (string, error) {
	s.n++
	id := fmt.Sprintf("s%d", s.n)
	ss := *site
	ss.ID = id
	s.m[id] = ss
	return id, nil
}
func (s *memSites) FindByID(_ context.Context, id string) (*models.CompanySite, error) {
	site, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return &site, nil
}
func (s *memSites) List(_ context.Context) ([]models.CompanySite, error) {
	var out []models.CompanySite
	for _, site := range s.m {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *memSites) ListByCompany(_ context.Context, companyID string) ([]models.CompanySite, error) {
	var out []models.CompanySite
	for _, site := range s.m {
		if site.CompanyID == companyID {
			out = append(out, site)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *memSites) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

type memResponses struct {
	m map[string]models.Response
	n int
}

func (s *memResponses) Create(_ context.Context, r *models.Response) (string, error) {
	s.n++
	id := fmt.Sprintf("r%d", s.n)
	rr := *r
	rr.ID = id
	if rr.CreatedAt.IsZero() {
		rr.CreatedAt = time.Now()
	}
	s.m[id] = rr
	return id, nil
}
func (s *memResponses) ListAll(_ context.Context) ([]models.Response, error) {
	var out []models.Response
	for _, r := range s.m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
type testApp struct {
	mux       http.Handler
	users     *memUsers
	companies *memCompanies
	sites     *memSites
	responses *memResponses
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{
		users:     &memUsers{m: make(map[string]models.UserProfile)},
		companies: &memCompanies{m: make(map[string]models.Company)},
		sites:     &memSites{m: make(map[string]models.CompanySite)},
		responses: &memResponses{m: make(map[string]models.Response)},
	}

	authSvc := service.NewAuthService(app.users, testSecret)
	scopeSvc := service.NewScopeService(app.companies, app.sites, app.responses)
	submissionSvc := service.NewSubmissionService(app.responses, app.sites)
	analysisSvc := service.NewAnalysisService(scopeSvc, app.companies, app.sites)
	adminSvc := service.NewAdminService(app.companies, app.sites, app.users)
	prefSvc := service.NewPreferenceService(app.users, scopeSvc)

	app.mux = router.New(testSecret,
		handler.NewAuthHandler(authSvc),
		handler.NewQuestionnaireHandler(),
		handler.NewResponseHandler(submissionSvc, scopeSvc, app.users),
		handler.NewDashboardHandler(analysisSvc, scopeSvc, app.users),
		handler.NewPreferenceHandler(prefSvc, app.users),
		handler.NewAnalysisHandler(analysisSvc, app.users),
		handler.NewReportHandler(analysisSvc, app.users),
		handler.NewAdminHandler(adminSvc),
	)

	require.NoError(t, authSvc.SeedAdmin(context.Background(), "admin@vdtcheck.local", "admin123"))
	return app
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Token
}

func completeAnswers() map[string]any {
	answers := make(map[string]any)
	for _, q := range questionnaire.Questions() {
		if !questionnaire.Required(q) {
			continue
		}
		if len(q.Options) > 0 {
			if q.Type == questionnaire.TypeCheckboxMulti {
				answers[q.ID] = []string{q.Options[0]}
			} else {
				answers[q.ID] = q.Options[0]
			}
			continue
		}
		answers[q.ID] = "test"
	}
	return answers
}

func TestFullFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@vdtcheck.local", "admin123")

	// Admin sets up a company with one site.
	rec := app.do(t, http.MethodPost, "/api/v1/admin/companies", admin, map[string]string{"name": "Acme SpA"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var company models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &company))

	rec = app.do(t, http.MethodPost, "/api/v1/admin/sites", admin, map[string]string{
		"companyId": company.ID, "name": "Sede Milano", "address": "Via Dante 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var site models.CompanySite
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &site))

	// A worker registers; the admin assigns them to the company.
	rec = app.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "anna@acme.it", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var registered struct {
		User models.UserProfile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = app.do(t, http.MethodPut, "/api/v1/admin/users/"+registered.User.UserID+"/assignments", admin,
		map[string]any{"companyIds": []string{company.ID}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	worker := app.login(t, "anna@acme.it", "password1")

	// The worker reads the checklist schema and submits a compilation.
	rec = app.do(t, http.MethodGet, "/api/v1/questionnaire", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var schema struct {
		FormID    string                   `json:"formId"`
		Questions []questionnaire.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Equal(t, questionnaire.FormID, schema.FormID)
	assert.Len(t, schema.Questions, 51)

	answers := completeAnswers()
	answers["meta_nome"] = "Anna Rossi"
	answers["meta_reparto"] = "Contabilità"
	rec = app.do(t, http.MethodPost, "/api/v1/responses", worker, map[string]any{
		"companyId": company.ID, "siteId": site.ID, "answers": answers,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Dashboard counts it.
	rec = app.do(t, http.MethodGet, "/api/v1/dashboard", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats service.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalResponses)
	assert.Equal(t, 1, stats.Workers)

	// Analysis table for the worker.
	rec = app.do(t, http.MethodGet, "/api/v1/analysis/workers/Anna%20Rossi", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var table service.ComparisonTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, "Anna Rossi", table.Title)
	assert.Len(t, table.Columns, 1)

	// PDF report download.
	rec = app.do(t, http.MethodGet, "/api/v1/reports/worker/Anna%20Rossi", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report_lavoratore_Anna_Rossi_")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])

	// Selection preference round-trip.
	rec = app.do(t, http.MethodPut, "/api/v1/preferences/selection", worker, map[string]string{
		"companyId": company.ID, "siteId": site.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sel models.Selection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sel))
	assert.Equal(t, "Sede Milano", sel.SiteName)

	rec = app.do(t, http.MethodGet, "/api/v1/preferences/selection", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var readBack models.Selection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &readBack))
	assert.Equal(t, sel, readBack)
}

func TestSubmitValidationError(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@vdtcheck.local", "admin123")

	rec := app.do(t, http.MethodPost, "/api/v1/admin/companies", admin, map[string]string{"name": "Acme SpA"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var company models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &company))
	rec = app.do(t, http.MethodPost, "/api/v1/admin/sites", admin, map[string]string{
		"companyId": company.ID, "name": "Sede Milano",
	})
	var site models.CompanySite
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &site))

	answers := completeAnswers()
	delete(answers, "10.1")
	rec = app.do(t, http.MethodPost, "/api/v1/responses", admin, map[string]any{
		"companyId": company.ID, "siteId": site.ID, "answers": answers,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var verr service.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verr))
	assert.Equal(t, "10.1", verr.QuestionID)
	assert.Equal(t, "10) INTERFACCIA UOMO-MACCHINA", verr.Section)
}

func TestAdminRoutesForbiddenForUsers(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "anna@acme.it", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	worker := app.login(t, "anna@acme.it", "password1")

	rec = app.do(t, http.MethodPost, "/api/v1/admin/companies", worker, map[string]string{"name": "Acme"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/v1/admin/users", worker, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVisibilityAcrossCompanies(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@vdtcheck.local", "admin123")

	var companies []models.Company
	var sites []models.CompanySite
	for _, name := range []string{"Acme SpA", "Beta Srl"} {
		rec := app.do(t, http.MethodPost, "/api/v1/admin/companies", admin, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code)
		var c models.Company
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
		companies = append(companies, c)

		rec = app.do(t, http.MethodPost, "/api/v1/admin/sites", admin, map[string]string{
			"companyId": c.ID, "name": "Sede " + name,
		})
		var s models.CompanySite
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		sites = append(sites, s)
	}

	for i, worker := range []string{"Rossi", "Verdi"} {
		answers := completeAnswers()
		answers["meta_nome"] = worker
		rec := app.do(t, http.MethodPost, "/api/v1/responses", admin, map[string]any{
			"companyId": companies[i].ID, "siteId": sites[i].ID, "answers": answers,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := app.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "anna@acme.it", "password": "password1",
	})
	var registered struct {
		User models.UserProfile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	rec = app.do(t, http.MethodPut, "/api/v1/admin/users/"+registered.User.UserID+"/assignments", admin,
		map[string]any{"companyIds": []string{companies[0].ID}})
	require.Equal(t, http.StatusOK, rec.Code)

	worker := app.login(t, "anna@acme.it", "password1")

	// Only Acme's worker shows up.
	rec = app.do(t, http.MethodGet, "/api/v1/analysis/workers", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Workers []service.GroupSummary `json:"workers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Workers, 1)
	assert.Equal(t, "Rossi", listing.Workers[0].Name)

	// Beta's site and company read as missing, not forbidden.
	rec = app.do(t, http.MethodGet, "/api/v1/analysis/sites/"+sites[1].ID, worker, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/v1/analysis/companies/"+companies[1].ID, worker, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Company listing is scoped too.
	rec = app.do(t, http.MethodGet, "/api/v1/companies", worker, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var companyListing struct {
		Companies []models.Company `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &companyListing))
	require.Len(t, companyListing.Companies, 1)
	assert.Equal(t, "Acme SpA", companyListing.Companies[0].Name)
}
