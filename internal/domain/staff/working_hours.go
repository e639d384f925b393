package staff

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ValidateWorkingHours confere a grade semanal antes de substituí-la.
func ValidateWorkingHours(days []models.WorkingHours) error {
	seen := map[int]bool{}

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return httperr.ErrValidation("invalid_weekday", "Dia da semana deve estar entre 0 (domingo) e 6 (sábado).")
		}
		if seen[d.Weekday] {
			return httperr.ErrValidation("duplicated_weekday", fmt.Sprintf("Dia da semana %d informado mais de uma vez.", d.Weekday))
		}
		seen[d.Weekday] = true

		if !d.Active {
			continue
		}

		start, ok1 := parseHM(d.StartTime)
		end, ok2 := parseHM(d.EndTime)
		if !ok1 || !ok2 || !start.Before(end) {
			return httperr.ErrValidation("invalid_working_hours", fmt.Sprintf("Horário inválido no dia %d.", d.Weekday))
		}

		if d.LunchStart == "" && d.LunchEnd == "" {
			continue
		}

		ls, ok3 := parseHM(d.LunchStart)
		le, ok4 := parseHM(d.LunchEnd)
		if !ok3 || !ok4 || !ls.Before(le) || ls.Before(start) || le.After(end) {
			return httperr.ErrValidation("invalid_lunch_break", fmt.Sprintf("Intervalo de almoço inválido no dia %d.", d.Weekday))
		}
	}

	return nil
}

func parseHM(hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	return t, err == nil
}
