package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ChangeStatus struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewChangeStatus(
	repo domain.Repository,
	audit audit.Recorder,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute aplica a máquina de estados: existência, legalidade e depois papel.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	clinicID string,
	id string,
	target string,
	role models.Role,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, clinicID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errAppointmentNotFound()
	}
	if err != nil {
		return nil, err
	}

	to, err := domain.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Transition(ap, to, role); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errAppointmentNotFound()
		}
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   to,
			"role": role,
		},
	})

	zerolog.Ctx(ctx).Info().
		Str("appointment_id", ap.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("appointment status changed")

	return ap, nil
}
