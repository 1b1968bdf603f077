// Package service implements the application logic between the HTTP handlers
// and the Firestore repositories. Services depend on the small store
// interfaces below so tests can run against in-memory fakes.
package service

import (
	"context"

	"github.com/sicurlav/vdtcheck/internal/models"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	FindByID(ctx context.Context, id string) (*models.UserProfile, error)
	Create(ctx context.Context, user *models.UserProfile) error
	List(ctx context.Context) ([]models.UserProfile, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateAssignments(ctx context.Context, id string, companyIDs, siteIDs []string) error
	UpdateSelection(ctx context.Context, id string, sel *models.Selection) error
	Delete(ctx context.Context, id string) error
}

type CompanyStore interface {
	Create(ctx context.Context, company *models.Company) (string, error)
	FindByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Delete(ctx context.Context, id string) error
}

type SiteStore interface {
	Create(ctx context.Context, site *models.CompanySite) (string, error)
	FindByID(ctx context.Context, id string) (*models.CompanySite, error)
	List(ctx context.Context) ([]models.CompanySite, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.CompanySite, error)
	Delete(ctx context.Context, id string) error
}

type ResponseStore interface {
	Create(ctx context.Context, resp *models.Response) (string, error)
	ListAll(ctx context.Context) ([]models.Response, error)
}
