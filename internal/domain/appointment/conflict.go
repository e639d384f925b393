package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
)

// Interval é o intervalo semiaberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMin int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMin) * time.Minute),
	}
}

// Overlaps é simétrico; intervalos encostados (a.End == b.Start) não conflitam.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func IntervalOf(ap *models.Appointment) Interval {
	return NewInterval(ap.AppointmentDate, ap.Duration)
}

// FindConflict devolve o primeiro agendamento que bloqueia o candidato.
// Cancelados e o próprio agendamento (excludeID) nunca bloqueiam.
func FindConflict(
	candidate Interval,
	existing []models.Appointment,
	excludeID string,
) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if ap.Status == StatusCancelled {
			continue
		}
		if excludeID != "" && ap.ID == excludeID {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap)) {
			return ap
		}
	}
	return nil
}

// EffectiveDuration aplica o padrão de 30 minutos.
func EffectiveDuration(d *int) int {
	if d == nil || *d <= 0 {
		return models.DefaultDurationMinutes
	}
	return *d
}
