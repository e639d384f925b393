package models

// Clinic é o tenant: todo dado operacional pertence a exatamente uma clínica.
type Clinic struct {
	BaseModel

	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`
	LogoURL  string `gorm:"size:512" json:"logoUrl"`
}
