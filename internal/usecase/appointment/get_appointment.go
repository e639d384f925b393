package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	clinicID string,
	id string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, clinicID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errAppointmentNotFound()
	}
	return ap, err
}
