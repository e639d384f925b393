package dto

import "github.com/BruksfildServices01/clinic-scheduler/internal/models"

type MeUserDTO struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Role           models.Role       `json:"role"`
	Status         models.UserStatus `json:"status"`
	Specialization string            `json:"specialization,omitempty"`
	ClinicID       string            `json:"clinicId"`
}

type MeClinicDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
	LogoURL  string `json:"logoUrl,omitempty"`
}

type MeDTO struct {
	User   MeUserDTO   `json:"user"`
	Clinic MeClinicDTO `json:"clinic"`
}

func NewMe(u *models.User, c *models.Clinic) MeDTO {
	return MeDTO{
		User: MeUserDTO{
			ID:             u.ID,
			Name:           u.Name,
			Email:          u.Email,
			Phone:          u.Phone,
			Role:           u.Role,
			Status:         u.Status,
			Specialization: u.Specialization,
			ClinicID:       u.ClinicID,
		},
		Clinic: MeClinicDTO{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			Phone:    c.Phone,
			Address:  c.Address,
			Timezone: c.Timezone,
			LogoURL:  c.LogoURL,
		},
	}
}
