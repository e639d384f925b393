package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// GetAvailability lista janelas livres de 30 minutos no expediente do médico.
// É apenas informativo: a criação não exige que o horário esteja no expediente.
type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	clinicID string,
	doctorID string,
	date string,
) ([]domain.TimeSlot, error) {

	clinic, err := loadClinic(ctx, uc.repo, clinicID)
	if err != nil {
		return nil, err
	}

	doctor, err := uc.repo.GetDoctor(ctx, clinic.ID, doctorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("doctor_not_found", "Médico não encontrado nesta clínica.")
	}
	if err != nil {
		return nil, err
	}
	if !doctor.IsActiveDoctor() {
		return nil, httperr.ErrValidation("doctor_unavailable", "O profissional informado não é um médico ativo.")
	}

	loc := timezone.Location(clinic.Timezone)
	dayStart, dayEnd, err := timezone.DayBounds(date, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, doctor.ID, int(dayStart.Weekday()))
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.TimeSlot{}, nil
	}
	if err != nil {
		return nil, err
	}

	schedule, ok := domain.ScheduleFor(wh, dayStart)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	busy, err := uc.repo.ListAppointmentsForPeriod(ctx, clinic.ID, doctor.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(loc)
	slots := []domain.TimeSlot{}

	for _, s := range domain.FreeSlots(schedule, models.DefaultDurationMinutes, busy) {
		if s.Start.Before(now) {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}

	return slots, nil
}
