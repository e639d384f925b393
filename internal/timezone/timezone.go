package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

var fallback = DefaultTimezone

// SetDefault troca o fuso usado quando a clínica não tem um configurado.
func SetDefault(tz string) {
	if IsValid(tz) {
		fallback = tz
	}
}

func Default() string {
	return fallback
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(fallback); err == nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(fallback))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DayBounds converte "YYYY-MM-DD" em [00:00:00.000, 23:59:59.999] no fuso informado.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

	return start, end, nil
}
