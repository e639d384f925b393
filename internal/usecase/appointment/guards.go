package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// Validações compartilhadas entre create / update
// ======================================================

func errAppointmentNotFound() error {
	return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
}

func loadClinic(ctx context.Context, repo domain.Repository, clinicID string) (*models.Clinic, error) {
	clinic, err := repo.GetClinicByID(ctx, clinicID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("clinic_not_found", "Clínica não encontrada.")
	}
	return clinic, err
}

// lockActiveDoctor trava a linha do médico (serializando agendamentos dele)
// e confere papel e status.
func lockActiveDoctor(ctx context.Context, repo domain.Repository, clinicID, doctorID string) (*models.User, error) {
	doctor, err := repo.LockDoctor(ctx, clinicID, doctorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("doctor_not_found", "Médico não encontrado nesta clínica.")
	}
	if err != nil {
		return nil, err
	}

	if !doctor.IsActiveDoctor() {
		return nil, httperr.ErrValidation(
			"doctor_unavailable",
			"O profissional informado não é um médico ativo.",
		)
	}
	return doctor, nil
}

func requirePatient(ctx context.Context, repo domain.Repository, clinicID, patientID string) error {
	_, err := repo.GetPatient(ctx, clinicID, patientID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("patient_not_found", "Paciente não encontrado nesta clínica.")
	}
	return err
}

// ensureSlotFree roda a detecção de conflito para [start, start+duration).
func ensureSlotFree(
	ctx context.Context,
	repo domain.Repository,
	clinic *models.Clinic,
	doctorID string,
	start time.Time,
	duration int,
	excludeID string,
) error {
	candidate := domain.NewInterval(start, duration)

	existing, err := repo.ListBlockingAppointments(ctx, clinic.ID, doctorID, candidate.End, excludeID)
	if err != nil {
		return err
	}

	clash := domain.FindConflict(candidate, existing, excludeID)
	if clash == nil {
		return nil
	}

	loc := timezone.Location(clinic.Timezone)
	return httperr.ErrConflict(
		"time_conflict",
		fmt.Sprintf(
			"O médico já possui um agendamento das %s às %s neste dia.",
			clash.AppointmentDate.In(loc).Format("15:04"),
			clash.EndsAt().In(loc).Format("15:04"),
		),
	)
}

// recordConflict registra a tentativa recusada na trilha de auditoria.
func recordConflict(ctx context.Context, rec audit.Recorder, clinicID, doctorID string, start time.Time, duration int) {
	rec.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "appointment_conflict",
		Entity:   "appointment",
		Metadata: map[string]any{
			"doctorId":        doctorID,
			"appointmentDate": start,
			"duration":        duration,
		},
	})
}
