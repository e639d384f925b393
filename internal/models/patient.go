package models

import "time"

// Paciente não tem login; pertence a uma clínica e é identificado pelo telefone.
type Patient struct {
	BaseModel

	ClinicID string `gorm:"size:36;not null;index:idx_patient_clinic_phone" json:"clinicId"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	Phone       string     `gorm:"size:20;index:idx_patient_clinic_phone" json:"phone"`
	Email       string     `gorm:"size:100" json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `gorm:"size:20" json:"gender,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
}
