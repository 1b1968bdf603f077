package models

import "time"

const (
	RoleUser       = "user"
	RoleSuperAdmin = "super_admin"
)

// UserProfile is the profile document keyed by user id. The single-value
// companyId/siteId fields are a legacy schema kept for read compatibility;
// this codebase only ever writes the array fields.
type UserProfile struct {
	UserID       string     `firestore:"userId" json:"userId"`
	Email        string     `firestore:"email" json:"email"`
	PasswordHash string     `firestore:"passwordHash" json:"-"`
	Role         string     `firestore:"role" json:"role"`
	CompanyID    string     `firestore:"companyId,omitempty" json:"companyId,omitempty"`
	SiteID       string     `firestore:"siteId,omitempty" json:"siteId,omitempty"`
	CompanyIDs   []string   `firestore:"companyIds" json:"companyIds"`
	SiteIDs      []string   `firestore:"siteIds" json:"siteIds"`
	Selection    *Selection `firestore:"selectedCompanyData,omitempty" json:"selectedCompanyData,omitempty"`
	CreatedAt    time.Time  `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// Selection is the last company/site picked on the dashboard, read back only
// to repopulate the pickers. Never validated for staleness.
type Selection struct {
	CompanyID   string `firestore:"companyId" json:"companyId"`
	CompanyName string `firestore:"companyName" json:"companyName"`
	SiteID      string `firestore:"siteId" json:"siteId"`
	SiteName    string `firestore:"siteName" json:"siteName"`
}

func (u *UserProfile) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// EffectiveCompanyIDs returns the assigned companies, falling back to the
// legacy single-value field when the array was never written.
func (u *UserProfile) EffectiveCompanyIDs() []string {
	if len(u.CompanyIDs) > 0 {
		return u.CompanyIDs
	}
	if u.CompanyID != "" {
		return []string{u.CompanyID}
	}
	return nil
}

func (u *UserProfile) EffectiveSiteIDs() []string {
	if len(u.SiteIDs) > 0 {
		return u.SiteIDs
	}
	if u.SiteID != "" {
		return []string{u.SiteID}
	}
	return nil
}
