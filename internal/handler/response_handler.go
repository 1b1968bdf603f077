package handler

import (
	"errors"
	"net/http"

	"github.com/sicurlav/vdtcheck/internal/service"
)

type ResponseHandler struct {
	submissions *service.SubmissionService
	scope       *service.ScopeService
	users       service.UserStore
}

func NewResponseHandler(submissions *service.SubmissionService, scope *service.ScopeService, users service.UserStore) *ResponseHandler {
	return &ResponseHandler{submissions: submissions, scope: scope, users: users}
}

func (h *ResponseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in service.SubmitInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.submissions.Submit(r.Context(), user, in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, verr)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	responses, err := h.scope.VisibleResponses(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": responses, "total": len(responses)})
}
