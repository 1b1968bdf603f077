package handler

import (
	"net/http"

	"github.com/sicurlav/vdtcheck/internal/questionnaire"
)

type QuestionnaireHandler struct{}

func NewQuestionnaireHandler() *QuestionnaireHandler {
	return &QuestionnaireHandler{}
}

// Schema serves the fixed checklist so the client can render the compile
// form without hardcoding it.
func (h *QuestionnaireHandler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"formId":    questionnaire.FormID,
		"questions": questionnaire.Questions(),
	})
}
