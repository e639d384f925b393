package models

import "time"

type AuditLog struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	ClinicID string  `gorm:"size:36;index;not null" json:"clinicId"`
	UserID   *string `gorm:"size:36" json:"userId"`
	Action   string  `gorm:"size:50;not null" json:"action"`

	Entity   string  `gorm:"size:50" json:"entity"`
	EntityID *string `gorm:"size:36" json:"entityId"`
	Metadata string  `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
