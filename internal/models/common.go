package models

import "time"

// AuditFields holds standard audit information shared by all entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
