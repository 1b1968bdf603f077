package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/sicurlav/vdtcheck/internal/logging"
	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/store"
)

type ResponseRepo struct {
	st *store.Store
}

func NewResponseRepo(st *store.Store) *ResponseRepo {
	return &ResponseRepo{st: st}
}

func (r *ResponseRepo) col() *firestore.CollectionRef {
	return r.st.Collection(store.ResponsesCollection)
}

func (r *ResponseRepo) Create(ctx context.Context, resp *models.Response) (string, error) {
	id := uuid.NewString()
	if _, err := r.col().Doc(id).Set(ctx, resp); err != nil {
		return "", err
	}
	return id, nil
}

// ListAll loads the whole collection. Visibility filtering happens in the
// service layer because a response is readable through either its company or
// its site assignment, which a single Firestore query cannot express.
func (r *ResponseRepo) ListAll(ctx context.Context) ([]models.Response, error) {
	return r.collect(r.col().Documents(ctx))
}

func (r *ResponseRepo) collect(it *firestore.DocumentIterator) ([]models.Response, error) {
	defer it.Stop()
	var out []models.Response
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var resp models.Response
		if err := snap.DataTo(&resp); err != nil {
			logging.LogError("repository", "ResponseRepo.collect", err)
			continue
		}
		resp.ID = snap.Ref.ID
		out = append(out, resp)
	}
	return out, nil
}
