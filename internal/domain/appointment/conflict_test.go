package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", "2025-01-15 "+hhmm)
	return t
}

func TestInterval_Overlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", NewInterval(at("10:00"), 30), NewInterval(at("10:00"), 30), true},
		{"partial", NewInterval(at("10:00"), 30), NewInterval(at("10:15"), 30), true},
		{"contained", NewInterval(at("10:00"), 60), NewInterval(at("10:15"), 15), true},
		{"back to back", NewInterval(at("10:00"), 30), NewInterval(at("10:30"), 30), false},
		{"disjoint", NewInterval(at("10:00"), 30), NewInterval(at("11:00"), 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []models.Appointment{
		{BaseModel: models.BaseModel{ID: "a1"}, AppointmentDate: at("10:00"), Duration: 30, Status: StatusPending},
		{BaseModel: models.BaseModel{ID: "a2"}, AppointmentDate: at("11:00"), Duration: 30, Status: StatusCancelled},
	}

	t.Run("overlap is reported", func(t *testing.T) {
		got := FindConflict(NewInterval(at("10:15"), 30), existing, "")
		if assert.NotNil(t, got) {
			assert.Equal(t, "a1", got.ID)
		}
	})

	t.Run("cancelled never blocks", func(t *testing.T) {
		assert.Nil(t, FindConflict(NewInterval(at("11:00"), 30), existing, ""))
	})

	t.Run("own id is excluded", func(t *testing.T) {
		assert.Nil(t, FindConflict(NewInterval(at("10:10"), 30), existing, "a1"))
	})

	t.Run("back to back is free", func(t *testing.T) {
		assert.Nil(t, FindConflict(NewInterval(at("10:30"), 30), existing, ""))
	})
}

func TestEffectiveDuration(t *testing.T) {
	d := 45
	zero := 0
	assert.Equal(t, 30, EffectiveDuration(nil))
	assert.Equal(t, 30, EffectiveDuration(&zero))
	assert.Equal(t, 45, EffectiveDuration(&d))
}
