package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sicurlav/vdtcheck/internal/models"
)

// In-memory stores used across the service tests.

type fakeUserStore struct {
	users map[string]models.UserProfile
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.UserProfile)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.UserProfile, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.UserProfile) error {
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id, role string) error {
	u := f.users[id]
	u.Role = role
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) UpdateAssignments(_ context.Context, id string, companyIDs, siteIDs []string) error {
	u := f.users[id]
	u.CompanyIDs = companyIDs
	u.SiteIDs = siteIDs
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) UpdateSelection(_ context.Context, id string, sel *models.Selection) error {
	u := f.users[id]
	u.Selection = sel
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeCompanyStore struct {
	companies map[string]models.Company
	nextID    int
}

func newFakeCompanyStore() *fakeCompanyStore {
	return &fakeCompanyStore{companies: make(map[string]models.Company)}
}

func (f *fakeCompanyStore) Create(_ context.Context, company *models.Company) (string, error) {
	f.nextID++
	id := fmt.Sprintf("c%d", f.nextID)
	c := *company
	c.ID = id
	f.companies[id] = c
	return id, nil
}

func (f *fakeCompanyStore) FindByID(_ context.Context, id string) (*models.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCompanyStore) List(_ context.Context) ([]models.Company, error) {
	out := make([]models.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCompanyStore) Delete(_ context.Context, id string) error {
	delete(f.companies, id)
	return nil
}

type fakeSiteStore struct {
	sites  map[string]models.CompanySite
	nextID int
}

func newFakeSiteStore() *fakeSiteStore {
	return &fakeSiteStore{sites: make(map[string]models.CompanySite)}
}

func (f *fakeSiteStore) Create(_ context.Context, site *models.CompanySite) (string, error) {
	f.nextID++
	id := fmt.Sprintf("s%d", f.nextID)
	s := *site
	s.ID = id
	f.sites[id] = s
	return id, nil
}

func (f *fakeSiteStore) FindByID(_ context.Context, id string) (*models.CompanySite, error) {
	s, ok := f.sites[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSiteStore) List(_ context.Context) ([]models.CompanySite, error) {
	out := make([]models.CompanySite, 0, len(f.sites))
	for _, s := range f.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSiteStore) ListByCompany(_ context.Context, companyID string) ([]models.CompanySite, error) {
	var out []models.CompanySite
	for _, s := range f.sites {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSiteStore) Delete(_ context.Context, id string) error {
	delete(f.sites, id)
	return nil
}

type fakeResponseStore struct {
	responses map[string]models.Response
	nextID    int
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{responses: make(map[string]models.Response)}
}

func (f *fakeResponseStore) Create(_ context.Context, resp *models.Response) (string, error) {
	f.nextID++
	id := fmt.Sprintf("r%d", f.nextID)
	r := *resp
	r.ID = id
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.responses[id] = r
	return id, nil
}

func (f *fakeResponseStore) ListAll(_ context.Context) ([]models.Response, error) {
	out := make([]models.Response, 0, len(f.responses))
	for _, r := range f.responses {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
