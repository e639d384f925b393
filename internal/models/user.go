package models

import "strings"

type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleDoctor       Role = "DOCTOR"
	RoleReceptionist Role = "RECEPTIONIST"
	RolePatient      Role = "PATIENT"
)

// NormalizeRole accepts any casing ("doctor", "Doctor", "DOCTOR").
func NormalizeRole(r string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(r)))
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
	UserStatusPending  UserStatus = "PENDING"
)

// User representa um membro da equipe da clínica (admin, médico, recepção).
type User struct {
	BaseModel

	ClinicID string `gorm:"size:36;index;not null" json:"clinicId"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	Phone          string     `gorm:"size:20" json:"phone"`
	Role           Role       `gorm:"size:20;not null;default:'RECEPTIONIST'" json:"role"`
	Status         UserStatus `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	Specialization string     `gorm:"size:100" json:"specialization,omitempty"`
}

// IsActiveDoctor reports whether u can receive appointments.
func (u *User) IsActiveDoctor() bool {
	return u.Role == RoleDoctor && u.Status == UserStatusActive
}
