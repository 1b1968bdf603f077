package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sicurlav/vdtcheck/internal/models"
)

func adminFixture(t *testing.T) (*fixture, *AdminService) {
	f := newFixture(t)
	return f, NewAdminService(f.companies, f.sites, f.users)
}

func TestCreateCompanyAndSite(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()

	company, err := svc.CreateCompany(ctx, "Gamma Srl")
	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)

	site, err := svc.CreateSite(ctx, company.ID, "Sede Napoli", "Via Roma 1")
	require.NoError(t, err)
	assert.Equal(t, company.ID, site.CompanyID)

	_, err = svc.CreateSite(ctx, "missing", "Sede", "")
	assert.EqualError(t, err, "company not found")

	sites, err := f.sites.ListByCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, sites, 1)
}

func TestDeleteCompanyCascade(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addResponse(t, "c1", "s1", "w1", "Rossi", "IT", now, nil)
	f.addResponse(t, "c1", "s2", "w2", "Bianchi", "IT", now, nil)
	f.addResponse(t, "c2", "s3", "w3", "Verdi", "Vendite", now, nil)

	require.NoError(t, svc.DeleteCompany(ctx, "c1"))

	companies, _ := f.companies.List(ctx)
	require.Len(t, companies, 1)
	assert.Equal(t, "c2", companies[0].ID)

	sites, _ := f.sites.List(ctx)
	require.Len(t, sites, 1)
	assert.Equal(t, "s3", sites[0].ID)

	// Responses are never part of the cascade.
	responses, _ := f.responses.ListAll(ctx)
	assert.Len(t, responses, 3)
}

func TestDeleteSiteKeepsResponses(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addResponse(t, "c1", "s1", "w1", "Rossi", "IT", now, nil)
	f.addResponse(t, "c1", "s2", "w2", "Bianchi", "IT", now, nil)

	require.NoError(t, svc.DeleteSite(ctx, "s1"))

	sites, _ := f.sites.List(ctx)
	for _, s := range sites {
		assert.NotEqual(t, "s1", s.ID)
	}
	responses, _ := f.responses.ListAll(ctx)
	assert.Len(t, responses, 2)
}

func TestListUsers(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Create(ctx, &models.UserProfile{UserID: "u1", Email: "anna@acme.it", Role: models.RoleUser}))
	require.NoError(t, f.users.Create(ctx, &models.UserProfile{UserID: "u2", Email: "bruno@beta.it", Role: models.RoleUser}))

	all, err := svc.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListUsers(ctx, "ACME")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "anna@acme.it", filtered[0].Email)
}

func TestSetRole(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &models.UserProfile{UserID: "u1", Email: "anna@acme.it", Role: models.RoleUser}))

	require.NoError(t, svc.SetRole(ctx, "u1", models.RoleSuperAdmin))
	u, _ := f.users.FindByID(ctx, "u1")
	assert.Equal(t, models.RoleSuperAdmin, u.Role)

	assert.EqualError(t, svc.SetRole(ctx, "u1", "owner"), "unknown role")
	assert.EqualError(t, svc.SetRole(ctx, "missing", models.RoleUser), "user not found")
}

func TestSetAssignmentsDropsUnknownIDs(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &models.UserProfile{UserID: "u1", Email: "anna@acme.it", Role: models.RoleUser}))

	require.NoError(t, svc.SetAssignments(ctx, "u1", []string{"c1", "ghost"}, []string{"s3", "ghost"}))

	u, _ := f.users.FindByID(ctx, "u1")
	assert.Equal(t, []string{"c1"}, u.CompanyIDs)
	assert.Equal(t, []string{"s3"}, u.SiteIDs)
}

func TestDeleteUser(t *testing.T) {
	f, svc := adminFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &models.UserProfile{UserID: "u1", Email: "anna@acme.it", Role: models.RoleUser}))

	require.NoError(t, svc.DeleteUser(ctx, "u1"))
	u, _ := f.users.FindByID(ctx, "u1")
	assert.Nil(t, u)

	assert.EqualError(t, svc.DeleteUser(ctx, "u1"), "user not found")
}
