package service

import (
	"context"
	"errors"

	"github.com/sicurlav/vdtcheck/internal/models"
)

// PreferenceService persists the dashboard's last company/site selection on
// the user profile.
type PreferenceService struct {
	users UserStore
	scope *ScopeService
}

func NewPreferenceService(users UserStore, scope *ScopeService) *PreferenceService {
	return &PreferenceService{users: users, scope: scope}
}

// SaveSelection stores the picked company and optional site, denormalizing
// their names so the pickers repopulate without extra reads. The pick must
// fall inside the user's visible scope.
func (s *PreferenceService) SaveSelection(ctx context.Context, user *models.UserProfile, companyID, siteID string) (*models.Selection, error) {
	companies, err := s.scope.VisibleCompanies(ctx, user)
	if err != nil {
		return nil, err
	}
	sel := &models.Selection{}
	for _, c := range companies {
		if c.ID == companyID {
			sel.CompanyID = c.ID
			sel.CompanyName = c.Name
			break
		}
	}
	if sel.CompanyID == "" {
		return nil, errors.New("company not in scope")
	}
	if siteID != "" {
		sites, err := s.scope.VisibleSites(ctx, user)
		if err != nil {
			return nil, err
		}
		for _, site := range sites {
			if site.ID == siteID && site.CompanyID == companyID {
				sel.SiteID = site.ID
				sel.SiteName = site.Name
				break
			}
		}
		if sel.SiteID == "" {
			return nil, errors.New("site not in scope")
		}
	}
	if err := s.users.UpdateSelection(ctx, user.UserID, sel); err != nil {
		return nil, err
	}
	return sel, nil
}
