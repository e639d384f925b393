package models

// WorkingHours guarda o expediente de um médico em um dia da semana (0 = domingo).
type WorkingHours struct {
	BaseModel

	ClinicID string `gorm:"size:36;not null;index" json:"clinicId"`
	DoctorID string `gorm:"size:36;not null;uniqueIndex:idx_wh_doctor_weekday" json:"doctorId"`

	Weekday int `gorm:"uniqueIndex:idx_wh_doctor_weekday" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"startTime"`
	EndTime    string `gorm:"size:5" json:"endTime"`
	LunchStart string `gorm:"size:5" json:"lunchStart"`
	LunchEnd   string `gorm:"size:5" json:"lunchEnd"`
	Active     bool   `json:"active"`
}
