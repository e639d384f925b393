package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

const DefaultDurationMinutes = 30

type Appointment struct {
	BaseModel

	ClinicID string `gorm:"size:36;not null;index" json:"clinicId"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DoctorID string `gorm:"size:36;not null;index:idx_appointment_doctor_date" json:"doctorId"`
	Doctor   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor,omitempty"`

	PatientID string   `gorm:"size:36;not null;index" json:"patientId"`
	Patient   *Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient,omitempty"`

	AppointmentDate time.Time         `gorm:"not null;index:idx_appointment_doctor_date" json:"appointmentDate"`
	Duration        int               `gorm:"not null;default:30" json:"duration"`
	Status          AppointmentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	Reason string `gorm:"size:255" json:"reason,omitempty"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`
}

// EndsAt is the exclusive end of the appointment interval.
func (a *Appointment) EndsAt() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.Duration) * time.Minute)
}
