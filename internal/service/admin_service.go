package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sicurlav/vdtcheck/internal/logging"
	"github.com/sicurlav/vdtcheck/internal/models"
)

// AdminService backs the super-admin console: company/site CRUD and user
// management.
type AdminService struct {
	companies CompanyStore
	sites     SiteStore
	users     UserStore
}

func NewAdminService(companies CompanyStore, sites SiteStore, users UserStore) *AdminService {
	return &AdminService{companies: companies, sites: sites, users: users}
}

func (s *AdminService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.companies.List(ctx)
}

func (s *AdminService) ListSites(ctx context.Context) ([]models.CompanySite, error) {
	return s.sites.List(ctx)
}

func (s *AdminService) CreateCompany(ctx context.Context, name string) (*models.Company, error) {
	company := &models.Company{Name: name}
	id, err := s.companies.Create(ctx, company)
	if err != nil {
		return nil, err
	}
	company.ID = id
	return company, nil
}

// DeleteCompany removes the company together with its sites. Submitted
// responses stay in place; they become invisible once no assignment points
// at them. Deletions run sequentially; a failure mid-cascade leaves the
// remainder in place and is reported to the caller.
func (s *AdminService) DeleteCompany(ctx context.Context, id string) error {
	sites, err := s.sites.ListByCompany(ctx, id)
	if err != nil {
		return err
	}
	for _, site := range sites {
		if err := s.sites.Delete(ctx, site.ID); err != nil {
			return err
		}
	}
	return s.companies.Delete(ctx, id)
}

func (s *AdminService) CreateSite(ctx context.Context, companyID, name, address string) (*models.CompanySite, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company not found")
	}
	site := &models.CompanySite{CompanyID: companyID, Name: name, Address: address}
	id, err := s.sites.Create(ctx, site)
	if err != nil {
		return nil, err
	}
	site.ID = id
	return site, nil
}

// DeleteSite removes the site document; its responses remain.
func (s *AdminService) DeleteSite(ctx context.Context, id string) error {
	return s.sites.Delete(ctx, id)
}

// ListUsers returns every profile, optionally filtered by a case-insensitive
// email substring.
func (s *AdminService) ListUsers(ctx context.Context, query string) ([]models.UserProfile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users, nil
	}
	var out []models.UserProfile
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *AdminService) SetRole(ctx context.Context, userID, role string) error {
	if role != models.RoleUser && role != models.RoleSuperAdmin {
		return errors.New("unknown role")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	return s.users.UpdateRole(ctx, userID, role)
}

// SetAssignments replaces a user's company and site assignments. Unknown ids
// are dropped with a log line rather than rejected, so stale references in
// the admin UI cannot wedge the form.
func (s *AdminService) SetAssignments(ctx context.Context, userID string, companyIDs, siteIDs []string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	validCompanies := make([]string, 0, len(companyIDs))
	for _, id := range companyIDs {
		c, err := s.companies.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			logging.GetLogger().WithField("companyId", id).Warn("dropping unknown company assignment")
			continue
		}
		validCompanies = append(validCompanies, id)
	}
	validSites := make([]string, 0, len(siteIDs))
	for _, id := range siteIDs {
		site, err := s.sites.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if site == nil {
			logging.GetLogger().WithField("siteId", id).Warn("dropping unknown site assignment")
			continue
		}
		validSites = append(validSites, id)
	}
	return s.users.UpdateAssignments(ctx, userID, validCompanies, validSites)
}

func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	return s.users.Delete(ctx, userID)
}
