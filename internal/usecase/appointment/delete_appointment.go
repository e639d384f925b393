package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit audit.Recorder,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	clinicID string,
	id string,
) error {

	ap, err := uc.repo.GetAppointment(ctx, clinicID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return errAppointmentNotFound()
	}
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, clinicID, ap.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errAppointmentNotFound()
		}
		return err
	}

	uc.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"doctorId":        ap.DoctorID,
			"patientId":       ap.PatientID,
			"appointmentDate": ap.AppointmentDate,
			"status":          ap.Status,
		},
	})

	zerolog.Ctx(ctx).Info().Str("appointment_id", ap.ID).Msg("appointment deleted")

	return nil
}
