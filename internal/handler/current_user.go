package handler

import (
	"errors"
	"net/http"

	"github.com/sicurlav/vdtcheck/internal/auth"
	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/service"
)

var errUnauthorized = errors.New("unauthorized")

// currentUser resolves the authenticated profile behind the token claims.
// Visibility rules need the stored assignments, which are not in the token.
func currentUser(r *http.Request, users service.UserStore) (*models.UserProfile, error) {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		return nil, errUnauthorized
	}
	user, err := users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUnauthorized
	}
	return user, nil
}
