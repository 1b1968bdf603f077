package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sicurlav/vdtcheck/internal/models"
	"github.com/sicurlav/vdtcheck/internal/questionnaire"
)

// ValidationError reports the first checklist question that failed
// submission validation.
type ValidationError struct {
	QuestionID string `json:"questionId"`
	Section    string `json:"section"`
	Message    string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s (%s): %s", e.QuestionID, e.Section, e.Message)
}

type SubmissionService struct {
	responses ResponseStore
	sites     SiteStore
}

func NewSubmissionService(responses ResponseStore, sites SiteStore) *SubmissionService {
	return &SubmissionService{responses: responses, sites: sites}
}

type SubmitInput struct {
	CompanyID string         `json:"companyId"`
	SiteID    string         `json:"siteId"`
	Answers   map[string]any `json:"answers"`
}

// Submit validates a filled checklist and stores it. Unknown answer keys are
// dropped, string answers trimmed, and every required question must carry a
// non-blank value.
func (s *SubmissionService) Submit(ctx context.Context, user *models.UserProfile, in SubmitInput) (*models.Response, error) {
	if in.CompanyID == "" || in.SiteID == "" {
		return nil, errors.New("companyId and siteId are required")
	}
	site, err := s.sites.FindByID(ctx, in.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, errors.New("site not found")
	}
	if site.CompanyID != in.CompanyID {
		return nil, errors.New("site does not belong to company")
	}

	answers := normalizeAnswers(in.Answers)
	for _, q := range questionnaire.Questions() {
		if _, ok := answers[q.ID]; !ok {
			// Unanswered optional questions persist as empty values so every
			// document carries the full vocabulary.
			if q.Type == questionnaire.TypeCheckboxMulti {
				answers[q.ID] = []string{}
			} else {
				answers[q.ID] = ""
			}
		}
		if !questionnaire.Required(q) {
			continue
		}
		if questionnaire.RenderAnswer(answers[q.ID]) == questionnaire.Dash {
			return nil, &ValidationError{
				QuestionID: q.ID,
				Section:    q.Section,
				Message:    "risposta obbligatoria mancante",
			}
		}
	}

	resp := &models.Response{
		UserID:    user.UserID,
		UserEmail: user.Email,
		FormID:    questionnaire.FormID,
		CompanyID: in.CompanyID,
		SiteID:    in.SiteID,
		Answers:   answers,
	}
	id, err := s.responses.Create(ctx, resp)
	if err != nil {
		return nil, err
	}
	resp.ID = id
	return resp, nil
}

func normalizeAnswers(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for id, v := range raw {
		if !questionnaire.Known(id) {
			continue
		}
		switch x := v.(type) {
		case string:
			out[id] = strings.TrimSpace(x)
		case []any:
			parts := make([]string, 0, len(x))
			for _, e := range x {
				if s, ok := e.(string); ok {
					parts = append(parts, strings.TrimSpace(s))
				} else {
					parts = append(parts, fmt.Sprintf("%v", e))
				}
			}
			out[id] = parts
		default:
			out[id] = v
		}
	}
	return out
}
