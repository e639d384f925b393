package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DaySchedule é o expediente de um dia já convertido para instantes.
type DaySchedule struct {
	Start      time.Time
	End        time.Time
	HasLunch   bool
	LunchStart time.Time
	LunchEnd   time.Time
}

// ScheduleFor converte o expediente "HH:MM" para o dia de `day`, no fuso de `day`.
// ok=false quando o médico não atende nesse dia.
func ScheduleFor(wh *models.WorkingHours, day time.Time) (DaySchedule, bool) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return DaySchedule{}, false
	}

	loc := day.Location()
	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	start, ok1 := parseHM(wh.StartTime)
	end, ok2 := parseHM(wh.EndTime)
	if !ok1 || !ok2 || !start.Before(end) {
		return DaySchedule{}, false
	}

	ds := DaySchedule{Start: start, End: end}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, ok3 := parseHM(wh.LunchStart)
		le, ok4 := parseHM(wh.LunchEnd)
		if ok3 && ok4 && ls.Before(le) {
			ds.HasLunch = true
			ds.LunchStart = ls
			ds.LunchEnd = le
		}
	}

	return ds, true
}

// FreeSlots fatia o expediente em janelas de slotMin minutos, pulando almoço
// e qualquer janela sobreposta a `busy`.
func FreeSlots(ds DaySchedule, slotMin int, busy []models.Appointment) []Interval {
	if slotMin <= 0 {
		slotMin = models.DefaultDurationMinutes
	}
	step := time.Duration(slotMin) * time.Minute
	lunch := Interval{Start: ds.LunchStart, End: ds.LunchEnd}

	var slots []Interval
	for cur := ds.Start; !cur.Add(step).After(ds.End); cur = cur.Add(step) {
		slot := Interval{Start: cur, End: cur.Add(step)}

		if ds.HasLunch && slot.Overlaps(lunch) {
			continue
		}
		if FindConflict(slot, busy, "") != nil {
			continue
		}

		slots = append(slots, slot)
	}

	return slots
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
