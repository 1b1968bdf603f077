package models

import "time"

// Company is the root of the two-level org hierarchy.
type Company struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

// CompanySite belongs to exactly one company. The reference is enforced only
// by the admin cascade delete, not by any schema constraint.
type CompanySite struct {
	ID        string    `firestore:"-" json:"id"`
	CompanyID string    `firestore:"companyId" json:"companyId"`
	Name      string    `firestore:"name" json:"name"`
	Address   string    `firestore:"address" json:"address"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}
