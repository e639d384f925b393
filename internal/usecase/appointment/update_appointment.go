package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// UpdateInput é parcial: nil significa "manter o valor atual".
// Status não é editável aqui (ver ChangeStatus).
type UpdateInput struct {
	DoctorID        *string
	PatientID       *string
	AppointmentDate *time.Time
	Duration        *int    `validate:"omitempty,min=15,max=240"`
	Reason          *string `validate:"omitempty,max=255"`
	Notes           *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	clinicID string,
	id string,
	in UpdateInput,
) (*models.Appointment, error) {

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	clinic, err := loadClinic(ctx, uc.repo, clinicID)
	if err != nil {
		return nil, err
	}

	var (
		merged     models.Appointment
		reschedule bool
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		current, err := tx.GetAppointment(ctx, clinic.ID, id)
		if errors.Is(err, domain.ErrNotFound) {
			return errAppointmentNotFound()
		}
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 1️⃣ Finalizados são imutáveis
		// --------------------------------------------------
		if err := domain.EnsureMutable(current.Status); err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Merge dos campos permitidos
		// --------------------------------------------------
		merged = *current
		merged.Doctor = nil
		merged.Patient = nil

		doctorChanged := in.DoctorID != nil && *in.DoctorID != current.DoctorID
		patientChanged := in.PatientID != nil && *in.PatientID != current.PatientID
		dateChanged := in.AppointmentDate != nil && !in.AppointmentDate.Equal(current.AppointmentDate)
		durationChanged := in.Duration != nil && *in.Duration != current.Duration

		if doctorChanged {
			merged.DoctorID = *in.DoctorID
		}
		if patientChanged {
			merged.PatientID = *in.PatientID
		}
		if dateChanged {
			merged.AppointmentDate = *in.AppointmentDate
		}
		if durationChanged {
			merged.Duration = *in.Duration
		}
		if in.Reason != nil {
			merged.Reason = *in.Reason
		}
		if in.Notes != nil {
			merged.Notes = *in.Notes
		}

		// --------------------------------------------------
		// 3️⃣ Referências alteradas são revalidadas
		// --------------------------------------------------
		if patientChanged {
			if err := requirePatient(ctx, tx, clinic.ID, merged.PatientID); err != nil {
				return err
			}
		}

		reschedule = doctorChanged || dateChanged || durationChanged
		if reschedule {
			if doctorChanged {
				if _, err := lockActiveDoctor(ctx, tx, clinic.ID, merged.DoctorID); err != nil {
					return err
				}
			} else if _, err := tx.LockDoctor(ctx, clinic.ID, merged.DoctorID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}

			// --------------------------------------------------
			// 4️⃣ Conflito com os valores finais, ignorando o próprio
			// --------------------------------------------------
			if err := ensureSlotFree(ctx, tx, clinic, merged.DoctorID, merged.AppointmentDate, merged.Duration, merged.ID); err != nil {
				return err
			}
		}

		return tx.UpdateAppointment(ctx, &merged)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errAppointmentNotFound()
	}
	if err != nil {
		if httperr.KindOf(err) == httperr.KindConflict {
			recordConflict(ctx, uc.audit, clinic.ID, merged.DoctorID, merged.AppointmentDate, merged.Duration)
		}
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		ClinicID: clinic.ID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &merged.ID,
		Metadata: map[string]any{"rescheduled": reschedule},
	})

	zerolog.Ctx(ctx).Info().
		Str("appointment_id", merged.ID).
		Bool("rescheduled", reschedule).
		Msg("appointment updated")

	return uc.repo.GetAppointment(ctx, clinic.ID, merged.ID)
}
