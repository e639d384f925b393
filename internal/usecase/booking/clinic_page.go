package booking

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DoctorLister interface {
	ListActiveDoctors(ctx context.Context, clinicID string) ([]models.User, error)
}

type AvailabilityFinder interface {
	Execute(ctx context.Context, clinicID, doctorID, date string) ([]appointment.TimeSlot, error)
}

type PublicDoctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// ClinicPage é a vitrine pública da clínica: dados de contato e médicos ativos.
type ClinicPage struct {
	Name    string         `json:"name"`
	Slug    string         `json:"slug"`
	Phone   string         `json:"phone"`
	Address string         `json:"address"`
	LogoURL string         `json:"logoUrl,omitempty"`
	Doctors []PublicDoctor `json:"doctors"`
}

type GetClinicPage struct {
	clinics ClinicFinder
	doctors DoctorLister
}

func NewGetClinicPage(clinics ClinicFinder, doctors DoctorLister) *GetClinicPage {
	return &GetClinicPage{clinics: clinics, doctors: doctors}
}

func (uc *GetClinicPage) Execute(ctx context.Context, slug string) (*ClinicPage, error) {
	clinic, err := resolveClinic(ctx, uc.clinics, slug)
	if err != nil {
		return nil, err
	}

	docs, err := uc.doctors.ListActiveDoctors(ctx, clinic.ID)
	if err != nil {
		return nil, err
	}

	page := &ClinicPage{
		Name:    clinic.Name,
		Slug:    clinic.Slug,
		Phone:   clinic.Phone,
		Address: clinic.Address,
		LogoURL: clinic.LogoURL,
		Doctors: make([]PublicDoctor, 0, len(docs)),
	}
	for _, d := range docs {
		page.Doctors = append(page.Doctors, PublicDoctor{
			ID:             d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
		})
	}

	return page, nil
}

// GetPublicAvailability resolve o slug e delega ao cálculo de horários livres.
type GetPublicAvailability struct {
	clinics      ClinicFinder
	availability AvailabilityFinder
}

func NewGetPublicAvailability(clinics ClinicFinder, availability AvailabilityFinder) *GetPublicAvailability {
	return &GetPublicAvailability{clinics: clinics, availability: availability}
}

func (uc *GetPublicAvailability) Execute(
	ctx context.Context,
	slug string,
	doctorID string,
	date string,
) ([]appointment.TimeSlot, error) {

	clinic, err := resolveClinic(ctx, uc.clinics, slug)
	if err != nil {
		return nil, err
	}
	return uc.availability.Execute(ctx, clinic.ID, doctorID, date)
}
