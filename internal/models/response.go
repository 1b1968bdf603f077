package models

import "time"

// Response is one submitted checklist. Answer values are strings, booleans
// or string arrays; Firestore decodes arrays as []interface{}.
type Response struct {
	ID        string         `firestore:"-" json:"id"`
	UserID    string         `firestore:"userId" json:"userId"`
	UserEmail string         `firestore:"userEmail" json:"userEmail"`
	FormID    string         `firestore:"formId" json:"formId"`
	CompanyID string         `firestore:"companyId,omitempty" json:"companyId,omitempty"`
	SiteID    string         `firestore:"siteId,omitempty" json:"siteId,omitempty"`
	Answers   map[string]any `firestore:"answers" json:"answers"`
	CreatedAt time.Time      `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

func (r Response) Answer(id string) any {
	if r.Answers == nil {
		return nil
	}
	return r.Answers[id]
}

// Worker returns the evaluated worker's name from the header answers.
func (r Response) Worker() string {
	s, _ := r.Answer("meta_nome").(string)
	return s
}

// Department returns the office/department from the header answers.
func (r Response) Department() string {
	s, _ := r.Answer("meta_reparto").(string)
	return s
}
