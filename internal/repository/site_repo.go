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

type SiteRepo struct {
	st *store.Store
}

func NewSiteRepo(st *store.Store) *SiteRepo {
	return &SiteRepo{st: st}
}

func (r *SiteRepo) col() *firestore.CollectionRef {
	return r.st.Collection(store.SitesCollection)
}

func (r *SiteRepo) Create(ctx context.Context, site *models.CompanySite) (string, error) {
	id := uuid.NewString()
	if _, err := r.col().Doc(id).Set(ctx, site); err != nil {
		return "", err
	}
	return id, nil
}

func (r *SiteRepo) FindByID(ctx context.Context, id string) (*models.CompanySite, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var s models.CompanySite
	if err := snap.DataTo(&s); err != nil {
		return nil, err
	}
	s.ID = snap.Ref.ID
	return &s, nil
}

func (r *SiteRepo) List(ctx context.Context) ([]models.CompanySite, error) {
	return r.collect(r.col().Documents(ctx))
}

func (r *SiteRepo) ListByCompany(ctx context.Context, companyID string) ([]models.CompanySite, error) {
	return r.collect(r.col().Where("companyId", "==", companyID).Documents(ctx))
}

func (r *SiteRepo) collect(it *firestore.DocumentIterator) ([]models.CompanySite, error) {
	defer it.Stop()
	var out []models.CompanySite
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var s models.CompanySite
		if err := snap.DataTo(&s); err != nil {
			logging.LogError("repository", "SiteRepo.collect", err)
			continue
		}
		s.ID = snap.Ref.ID
		out = append(out, s)
	}
	return out, nil
}

func (r *SiteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
