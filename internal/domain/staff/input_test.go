package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func validProfile() Profile {
	return Profile{
		Name:     "Dra. Ana",
		Email:    " Ana@Clinica.com ",
		Password: "segredo123",
	}
}

func TestNewCreateInput(t *testing.T) {
	in, err := NewCreateInput("doctor", validProfile(), "Ortodontia")
	require.NoError(t, err)

	doc, ok := in.(DoctorInput)
	require.True(t, ok)
	assert.Equal(t, "ana@clinica.com", doc.Email)
	assert.Equal(t, "Ortodontia", doc.Specialization)

	in, err = NewCreateInput("RECEPTIONIST", validProfile(), "ignorado")
	require.NoError(t, err)
	assert.IsType(t, ReceptionistInput{}, in)

	_, err = NewCreateInput("PATIENT", validProfile(), "")
	assert.True(t, httperr.IsBusiness(err, "invalid_role"))
}

func TestValidate(t *testing.T) {
	t.Run("doctor requires specialization", func(t *testing.T) {
		in, _ := NewCreateInput("DOCTOR", validProfile(), "")
		err := Validate(in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Specialization")
	})

	t.Run("admin does not", func(t *testing.T) {
		in, _ := NewCreateInput("ADMIN", validProfile(), "")
		assert.NoError(t, Validate(in))
	})

	t.Run("short password", func(t *testing.T) {
		p := validProfile()
		p.Password = "123"
		in, _ := NewCreateInput("ADMIN", p, "")
		assert.Error(t, Validate(in))
	})

	t.Run("nil input", func(t *testing.T) {
		assert.True(t, httperr.IsBusiness(Validate(nil), "invalid_role"))
	})
}

func TestNewUser(t *testing.T) {
	in, _ := NewCreateInput("DOCTOR", validProfile(), "Endodontia")
	u := NewUser("clinic-1", in, "hash")

	assert.Equal(t, "clinic-1", u.ClinicID)
	assert.Equal(t, models.RoleDoctor, u.Role)
	assert.Equal(t, models.UserStatusActive, u.Status)
	assert.Equal(t, "Endodontia", u.Specialization)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, "segredo123", Password(in))
}

func TestValidateWorkingHours(t *testing.T) {
	ok := []models.WorkingHours{
		{Weekday: 1, Active: true, StartTime: "08:00", EndTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00"},
		{Weekday: 0, Active: false},
	}
	assert.NoError(t, ValidateWorkingHours(ok))

	dup := []models.WorkingHours{{Weekday: 1}, {Weekday: 1}}
	assert.True(t, httperr.IsBusiness(ValidateWorkingHours(dup), "duplicated_weekday"))

	inverted := []models.WorkingHours{{Weekday: 2, Active: true, StartTime: "18:00", EndTime: "08:00"}}
	assert.True(t, httperr.IsBusiness(ValidateWorkingHours(inverted), "invalid_working_hours"))

	lunchOutside := []models.WorkingHours{
		{Weekday: 3, Active: true, StartTime: "08:00", EndTime: "12:00", LunchStart: "12:00", LunchEnd: "13:00"},
	}
	assert.True(t, httperr.IsBusiness(ValidateWorkingHours(lunchOutside), "invalid_lunch_break"))

	assert.True(t, httperr.IsBusiness(ValidateWorkingHours([]models.WorkingHours{{Weekday: 7}}), "invalid_weekday"))
}
