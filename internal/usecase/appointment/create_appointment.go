package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	DoctorID        string    `validate:"required"`
	PatientID       string    `validate:"required"`
	AppointmentDate time.Time `validate:"required"`
	Duration        *int      `validate:"omitempty,min=15,max=240"`
	Reason          string    `validate:"max=255"`
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	clinicID string,
	in CreateInput,
) (*models.Appointment, error) {

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	clinic, err := loadClinic(ctx, uc.repo, clinicID)
	if err != nil {
		return nil, err
	}

	duration := domain.EffectiveDuration(in.Duration)

	ap := &models.Appointment{
		ClinicID:        clinic.ID,
		DoctorID:        in.DoctorID,
		PatientID:       in.PatientID,
		AppointmentDate: in.AppointmentDate,
		Duration:        duration,
		Status:          domain.InitialStatus(),
		Reason:          in.Reason,
		Notes:           in.Notes,
	}

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		// --------------------------------------------------
		// 1️⃣ Médico (travado até o fim da transação)
		// --------------------------------------------------
		if _, err := lockActiveDoctor(ctx, tx, clinic.ID, in.DoctorID); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Paciente
		// --------------------------------------------------
		if err := requirePatient(ctx, tx, clinic.ID, in.PatientID); err != nil {
			return err
		}

		// --------------------------------------------------
		// 3️⃣ Conflito de horário
		// --------------------------------------------------
		if err := ensureSlotFree(ctx, tx, clinic, in.DoctorID, in.AppointmentDate, duration, ""); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4️⃣ Criação (status sempre pending)
		// --------------------------------------------------
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.KindOf(err) == httperr.KindConflict || httperr.IsExclusionConflict(err) {
			recordConflict(ctx, uc.audit, clinic.ID, in.DoctorID, in.AppointmentDate, duration)
			zerolog.Ctx(ctx).Info().
				Str("clinic_id", clinic.ID).
				Str("doctor_id", in.DoctorID).
				Time("appointment_date", in.AppointmentDate).
				Msg("appointment slot conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Record(ctx, audit.Event{
		ClinicID: clinic.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"doctorId":        ap.DoctorID,
			"patientId":       ap.PatientID,
			"appointmentDate": ap.AppointmentDate,
			"duration":        ap.Duration,
		},
	})

	zerolog.Ctx(ctx).Info().
		Str("appointment_id", ap.ID).
		Str("clinic_id", clinic.ID).
		Msg("appointment created")

	return uc.repo.GetAppointment(ctx, clinic.ID, ap.ID)
}
