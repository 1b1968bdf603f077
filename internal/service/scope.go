package service

import (
	"context"

	"github.com/sicurlav/vdtcheck/internal/models"
)

// ScopeService resolves what a user is allowed to see. Super admins see
// everything; everyone else sees only their assigned companies and sites.
// A user with no assignments sees nothing beyond their own submissions.
type ScopeService struct {
	companies CompanyStore
	sites     SiteStore
	responses ResponseStore
}

func NewScopeService(companies CompanyStore, sites SiteStore, responses ResponseStore) *ScopeService {
	return &ScopeService{companies: companies, sites: sites, responses: responses}
}

func (s *ScopeService) VisibleCompanies(ctx context.Context, user *models.UserProfile) ([]models.Company, error) {
	if user.IsSuperAdmin() {
		return s.companies.List(ctx)
	}
	var out []models.Company
	for _, id := range user.EffectiveCompanyIDs() {
		c, err := s.companies.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

// VisibleSites returns the sites of every assigned company plus any site
// assigned directly, deduplicated.
func (s *ScopeService) VisibleSites(ctx context.Context, user *models.UserProfile) ([]models.CompanySite, error) {
	if user.IsSuperAdmin() {
		return s.sites.List(ctx)
	}
	seen := make(map[string]bool)
	var out []models.CompanySite
	for _, companyID := range user.EffectiveCompanyIDs() {
		sites, err := s.sites.ListByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		for _, site := range sites {
			if !seen[site.ID] {
				seen[site.ID] = true
				out = append(out, site)
			}
		}
	}
	for _, siteID := range user.EffectiveSiteIDs() {
		if seen[siteID] {
			continue
		}
		site, err := s.sites.FindByID(ctx, siteID)
		if err != nil {
			return nil, err
		}
		if site != nil {
			seen[site.ID] = true
			out = append(out, *site)
		}
	}
	return out, nil
}

// VisibleResponses filters the whole collection in memory: a response is
// visible through its company assignment, its site assignment, or because
// the user submitted it.
func (s *ScopeService) VisibleResponses(ctx context.Context, user *models.UserProfile) ([]models.Response, error) {
	all, err := s.responses.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if user.IsSuperAdmin() {
		return all, nil
	}
	companies := toSet(user.EffectiveCompanyIDs())
	sites := toSet(user.EffectiveSiteIDs())

	var out []models.Response
	for _, r := range all {
		if companies[r.CompanyID] || sites[r.SiteID] || r.UserID == user.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
