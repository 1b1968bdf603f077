package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sicurlav/vdtcheck/internal/logging"
	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/store"
)

type UserRepo struct {
	st *store.Store
}

func NewUserRepo(st *store.Store) *UserRepo {
	return &UserRepo{st: st}
}

func (r *UserRepo) col() *firestore.CollectionRef {
	return r.st.Collection(store.UsersCollection)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	it := r.col().Where("email", "==", email).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(snap)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(snap)
}

// Create stores the profile under its user id so token subjects double as
// document ids.
func (r *UserRepo) Create(ctx context.Context, user *models.UserProfile) error {
	_, err := r.col().Doc(user.UserID).Set(ctx, user)
	return err
}

func (r *UserRepo) List(ctx context.Context) ([]models.UserProfile, error) {
	it := r.col().Documents(ctx)
	defer it.Stop()

	var out []models.UserProfile
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		u, err := decodeUser(snap)
		if err != nil {
			logging.LogError("repository", "UserRepo.List", err)
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
	})
	return err
}

func (r *UserRepo) UpdateAssignments(ctx context.Context, id string, companyIDs, siteIDs []string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "companyIds", Value: companyIDs},
		{Path: "siteIds", Value: siteIDs},
	})
	return err
}

func (r *UserRepo) UpdateSelection(ctx context.Context, id string, sel *models.Selection) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "selectedCompanyData", Value: sel},
	})
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func decodeUser(snap *firestore.DocumentSnapshot) (*models.UserProfile, error) {
	var u models.UserProfile
	if err := snap.DataTo(&u); err != nil {
		return nil, err
	}
	u.UserID = snap.Ref.ID
	return &u, nil
}
