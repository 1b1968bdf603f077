// Package repository maps the Firestore collections onto the domain models.
// Documents that fail to decode are skipped rather than failing the whole
// listing; decode errors are logged and the survivors returned.
package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sicurlav/vdtcheck/internal/logging"
	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/store"
)

type CompanyRepo struct {
	st *store.Store
}

func NewCompanyRepo(st *store.Store) *CompanyRepo {
	return &CompanyRepo{st: st}
}

func (r *CompanyRepo) col() *firestore.CollectionRef {
	return r.st.Collection(store.CompaniesCollection)
}

func (r *CompanyRepo) Create(ctx context.Context, company *models.Company) (string, error) {
	id := uuid.NewString()
	if _, err := r.col().Doc(id).Set(ctx, company); err != nil {
		return "", err
	}
	return id, nil
}

func (r *CompanyRepo) FindByID(ctx context.Context, id string) (*models.Company, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var c models.Company
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	return &c, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]models.Company, error) {
	it := r.col().Documents(ctx)
	defer it.Stop()

	var out []models.Company
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var c models.Company
		if err := snap.DataTo(&c); err != nil {
			logging.LogError("repository", "CompanyRepo.List", err)
			continue
		}
		c.ID = snap.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
