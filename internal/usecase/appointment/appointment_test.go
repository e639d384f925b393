package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	clinicA = "clinic-a"
	clinicB = "clinic-b"
	doctorD = "doctor-d"
	patient = "patient-p"
)

type fixture struct {
	repo  *memRepo
	audit *memAudit

	create       *CreateAppointment
	update       *UpdateAppointment
	changeStatus *ChangeStatus
	remove       *DeleteAppointment
	get          *GetAppointment
	list         *ListAppointments
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemRepo()
	repo.addClinic(clinicA, "UTC")
	repo.addClinic(clinicB, "UTC")
	repo.addUser(clinicA, doctorD, models.RoleDoctor, models.UserStatusActive)
	repo.addPatient(clinicA, patient)

	rec := &memAudit{}

	return &fixture{
		repo:         repo,
		audit:        rec,
		create:       NewCreateAppointment(repo, rec),
		update:       NewUpdateAppointment(repo, rec),
		changeStatus: NewChangeStatus(repo, rec),
		remove:       NewDeleteAppointment(repo, rec),
		get:          NewGetAppointment(repo),
		list:         NewListAppointments(repo),
	}
}

func jan15(hh, mm int) time.Time {
	return time.Date(2025, 1, 15, hh, mm, 0, 0, time.UTC)
}

func intPtr(v int) *int              { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func (f *fixture) book(t *testing.T, at time.Time, duration int) (*models.Appointment, error) {
	t.Helper()
	return f.create.Execute(context.Background(), clinicA, CreateInput{
		DoctorID:        doctorD,
		PatientID:       patient,
		AppointmentDate: at,
		Duration:        intPtr(duration),
	})
}

// ======================================================
// CREATE
// ======================================================

func TestCreate_BackToBackScenario(t *testing.T) {
	f := newFixture(t)

	first, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, clinicA, first.ClinicID)
	require.NotNil(t, first.Doctor)
	require.NotNil(t, first.Patient)

	_, err = f.book(t, jan15(10, 15), 30)
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Contains(t, err.Error(), "10:00")

	third, err := f.book(t, jan15(10, 30), 30)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, third.Status)

	assert.Equal(t,
		[]string{"appointment_created", "appointment_conflict", "appointment_created"},
		f.audit.actions(),
	)
}

func TestCreate_DefaultsDurationAndForcesPending(t *testing.T) {
	f := newFixture(t)

	ap, err := f.create.Execute(context.Background(), clinicA, CreateInput{
		DoctorID:        doctorD,
		PatientID:       patient,
		AppointmentDate: jan15(9, 0),
		Reason:          "Limpeza",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, ap.Duration)
	assert.Equal(t, models.StatusPending, ap.Status)
	assert.Equal(t, "Limpeza", ap.Reason)

	_, err = f.book(t, jan15(9, 29), 15)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestCreate_CancelledNeverBlocks(t *testing.T) {
	f := newFixture(t)
	f.repo.addAppointment(models.Appointment{
		ClinicID:        clinicA,
		DoctorID:        doctorD,
		PatientID:       patient,
		AppointmentDate: jan15(10, 0),
		Duration:        30,
		Status:          models.StatusCancelled,
	})

	_, err := f.book(t, jan15(10, 0), 30)
	assert.NoError(t, err)
}

func TestCreate_OtherDoctorDoesNotConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.addUser(clinicA, "doctor-e", models.RoleDoctor, models.UserStatusActive)

	_, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	_, err = f.create.Execute(context.Background(), clinicA, CreateInput{
		DoctorID:        "doctor-e",
		PatientID:       patient,
		AppointmentDate: jan15(10, 0),
	})
	assert.NoError(t, err)
}

func TestCreate_ReferenceValidation(t *testing.T) {
	f := newFixture(t)
	f.repo.addUser(clinicA, "inactive", models.RoleDoctor, models.UserStatusInactive)
	f.repo.addUser(clinicA, "reception", models.RoleReceptionist, models.UserStatusActive)
	f.repo.addUser(clinicB, "foreign-doctor", models.RoleDoctor, models.UserStatusActive)
	f.repo.addPatient(clinicB, "foreign-patient")

	cases := []struct {
		name      string
		doctorID  string
		patientID string
		duration  *int
		kind      httperr.Kind
		code      string
	}{
		{"inactive doctor", "inactive", patient, nil, httperr.KindValidation, "doctor_unavailable"},
		{"not a doctor", "reception", patient, nil, httperr.KindValidation, "doctor_unavailable"},
		{"doctor from another clinic", "foreign-doctor", patient, nil, httperr.KindNotFound, "doctor_not_found"},
		{"unknown doctor", "ghost", patient, nil, httperr.KindNotFound, "doctor_not_found"},
		{"patient from another clinic", doctorD, "foreign-patient", nil, httperr.KindNotFound, "patient_not_found"},
		{"duration too short", doctorD, patient, intPtr(10), httperr.KindValidation, "invalid_request"},
		{"duration too long", doctorD, patient, intPtr(241), httperr.KindValidation, "invalid_request"},
		{"missing doctor", "", patient, nil, httperr.KindValidation, "invalid_request"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(context.Background(), clinicA, CreateInput{
				DoctorID:        tc.doctorID,
				PatientID:       tc.patientID,
				AppointmentDate: jan15(14, 0),
				Duration:        tc.duration,
			})
			require.Error(t, err)
			assert.Equal(t, tc.kind, httperr.KindOf(err))
			assert.True(t, httperr.IsBusiness(err, tc.code), err.Error())
		})
	}

	assert.Empty(t, f.repo.appointments)
}

func TestCreate_UnknownClinic(t *testing.T) {
	f := newFixture(t)

	_, err := f.create.Execute(context.Background(), "nope", CreateInput{
		DoctorID:        doctorD,
		PatientID:       patient,
		AppointmentDate: jan15(8, 0),
	})
	assert.True(t, httperr.IsBusiness(err, "clinic_not_found"))
}

// ======================================================
// GET / DELETE
// ======================================================

func TestGet_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	got, err := f.get.Execute(context.Background(), clinicA, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)

	got, err = f.get.Execute(context.Background(), clinicB, ap.ID)
	assert.Nil(t, got)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	err = f.remove.Execute(context.Background(), clinicB, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	assert.Len(t, f.repo.appointments, 1)

	require.NoError(t, f.remove.Execute(context.Background(), clinicA, ap.ID))
	assert.Empty(t, f.repo.appointments)
	assert.Contains(t, f.audit.actions(), "appointment_deleted")

	err = f.remove.Execute(context.Background(), clinicA, ap.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdate_TerminalIsImmutable(t *testing.T) {
	inputs := map[string]UpdateInput{
		"notes":    {Notes: strPtr("x")},
		"reason":   {Reason: strPtr("y")},
		"date":     {AppointmentDate: timePtr(jan15(16, 0))},
		"duration": {Duration: intPtr(60)},
		"empty":    {},
	}

	for _, status := range []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled} {
		for name, in := range inputs {
			t.Run(fmt.Sprintf("%s/%s", status, name), func(t *testing.T) {
				f := newFixture(t)
				ap := f.repo.addAppointment(models.Appointment{
					ClinicID:        clinicA,
					DoctorID:        doctorD,
					PatientID:       patient,
					AppointmentDate: jan15(10, 0),
					Status:          status,
				})

				_, err := f.update.Execute(context.Background(), clinicA, ap.ID, in)
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, "appointment_locked"))
				assert.Equal(t, ap, f.repo.appointments[ap.ID])
			})
		}
	}
}

func TestUpdate_RescheduleExcludesItself(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	got, err := f.update.Execute(context.Background(), clinicA, ap.ID, UpdateInput{
		AppointmentDate: timePtr(jan15(10, 15)),
	})
	require.NoError(t, err)
	assert.True(t, got.AppointmentDate.Equal(jan15(10, 15)))
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestUpdate_RescheduleConflict(t *testing.T) {
	f := newFixture(t)
	_, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)
	second, err := f.book(t, jan15(11, 0), 30)
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), clinicA, second.ID, UpdateInput{
		AppointmentDate: timePtr(jan15(10, 20)),
	})
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	_, err = f.update.Execute(context.Background(), clinicA, second.ID, UpdateInput{
		AppointmentDate: timePtr(jan15(10, 30)),
		Duration:        intPtr(45),
	})
	require.NoError(t, err)

	stored := f.repo.appointments[second.ID]
	assert.True(t, stored.AppointmentDate.Equal(jan15(10, 30)))
	assert.Equal(t, 45, stored.Duration)
}

func TestUpdate_DurationExtensionConflicts(t *testing.T) {
	f := newFixture(t)
	first, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)
	_, err = f.book(t, jan15(10, 30), 30)
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), clinicA, first.ID, UpdateInput{Duration: intPtr(45)})
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestUpdate_ChangingDoctorRevalidates(t *testing.T) {
	f := newFixture(t)
	f.repo.addUser(clinicA, "inactive", models.RoleDoctor, models.UserStatusInactive)
	f.repo.addUser(clinicA, "doctor-e", models.RoleDoctor, models.UserStatusActive)

	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), clinicA, ap.ID, UpdateInput{DoctorID: strPtr("inactive")})
	assert.True(t, httperr.IsBusiness(err, "doctor_unavailable"))

	got, err := f.update.Execute(context.Background(), clinicA, ap.ID, UpdateInput{DoctorID: strPtr("doctor-e")})
	require.NoError(t, err)
	assert.Equal(t, "doctor-e", got.DoctorID)
}

func TestUpdate_ChangingPatientRevalidates(t *testing.T) {
	f := newFixture(t)
	f.repo.addPatient(clinicB, "foreign-patient")

	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), clinicA, ap.ID, UpdateInput{PatientID: strPtr("foreign-patient")})
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
}

func TestUpdate_NotesOnlySkipsConflictCheck(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	// Sobreposição pré-existente (ex.: dados legados) não impede editar observações.
	f.repo.addAppointment(models.Appointment{
		ClinicID:        clinicA,
		DoctorID:        doctorD,
		PatientID:       patient,
		AppointmentDate: jan15(10, 10),
		Status:          models.StatusConfirmed,
	})

	got, err := f.update.Execute(context.Background(), clinicA, ap.ID, UpdateInput{Notes: strPtr("Retorno")})
	require.NoError(t, err)
	assert.Equal(t, "Retorno", got.Notes)
}

func TestUpdate_NotFoundAcrossTenants(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), clinicB, ap.ID, UpdateInput{Notes: strPtr("x")})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

// ======================================================
// CHANGE STATUS
// ======================================================

func TestChangeStatus_Closure(t *testing.T) {
	for _, from := range domain.AllStatuses {
		allowed := map[domain.Status]bool{}
		for _, s := range domain.AllowedTransitions(from) {
			allowed[s] = true
		}

		for _, to := range domain.AllStatuses {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				f := newFixture(t)
				ap := f.repo.addAppointment(models.Appointment{
					ClinicID:        clinicA,
					DoctorID:        doctorD,
					PatientID:       patient,
					AppointmentDate: jan15(10, 0),
					Status:          from,
				})

				got, err := f.changeStatus.Execute(context.Background(), clinicA, ap.ID, string(to), models.RoleAdmin)
				if allowed[to] {
					require.NoError(t, err)
					assert.Equal(t, to, got.Status)
					assert.Equal(t, to, f.repo.appointments[ap.ID].Status)
					return
				}
				require.Error(t, err)
				assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
				assert.Equal(t, from, f.repo.appointments[ap.ID].Status)
			})
		}
	}
}

func TestChangeStatus_CompletionAuthorization(t *testing.T) {
	roles := map[models.Role]bool{
		models.RoleAdmin:        true,
		models.RoleDoctor:       true,
		"doctor":                true,
		models.RoleReceptionist: false,
		models.RolePatient:      false,
	}

	for role, ok := range roles {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture(t)
			ap := f.repo.addAppointment(models.Appointment{
				ClinicID:        clinicA,
				DoctorID:        doctorD,
				PatientID:       patient,
				AppointmentDate: jan15(10, 0),
				Status:          models.StatusConfirmed,
			})

			_, err := f.changeStatus.Execute(context.Background(), clinicA, ap.ID, "completed", role)
			if ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
			assert.Equal(t, models.StatusConfirmed, f.repo.appointments[ap.ID].Status)
		})
	}
}

func TestChangeStatus_CancelledIsTerminal(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	got, err := f.changeStatus.Execute(context.Background(), clinicA, ap.ID, "cancelled", models.RoleReceptionist)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	require.NotNil(t, got.Doctor)

	_, err = f.changeStatus.Execute(context.Background(), clinicA, ap.ID, "confirmed", models.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	assert.Contains(t, err.Error(), "cancelled")
	assert.Contains(t, f.audit.actions(), "appointment_cancelled")
}

func TestChangeStatus_Errors(t *testing.T) {
	f := newFixture(t)
	ap, err := f.book(t, jan15(10, 0), 30)
	require.NoError(t, err)

	_, err = f.changeStatus.Execute(context.Background(), clinicB, ap.ID, "confirmed", models.RoleAdmin)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = f.changeStatus.Execute(context.Background(), clinicA, ap.ID, "archived", models.RoleAdmin)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

// ======================================================
// LIST
// ======================================================

func TestList(t *testing.T) {
	f := newFixture(t)
	f.repo.addPatient(clinicA, "p2")

	for i := 0; i < 5; i++ {
		_, err := f.book(t, jan15(8+i, 0), 30)
		require.NoError(t, err)
	}
	_, err := f.create.Execute(context.Background(), clinicA, CreateInput{
		DoctorID:        doctorD,
		PatientID:       "p2",
		AppointmentDate: time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		res, err := f.list.Execute(context.Background(), clinicA, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, res.Appointments, 6)
		assert.Equal(t, Meta{Total: 6, Page: 1, Limit: 20, TotalPages: 1}, res.Meta)
		assert.True(t, res.Appointments[0].AppointmentDate.Equal(jan15(8, 0)))
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := f.list.Execute(context.Background(), clinicA, ListFilter{Page: 2, Limit: 4})
		require.NoError(t, err)
		assert.Len(t, res.Appointments, 2)
		assert.Equal(t, Meta{Total: 6, Page: 2, Limit: 4, TotalPages: 2}, res.Meta)
	})

	t.Run("date in clinic timezone", func(t *testing.T) {
		res, err := f.list.Execute(context.Background(), clinicA, ListFilter{Date: "2025-01-16"})
		require.NoError(t, err)
		require.Len(t, res.Appointments, 1)
		assert.Equal(t, "p2", res.Appointments[0].PatientID)
	})

	t.Run("patient and status", func(t *testing.T) {
		res, err := f.list.Execute(context.Background(), clinicA, ListFilter{PatientID: patient, Status: "PENDING"})
		require.NoError(t, err)
		assert.EqualValues(t, 5, res.Meta.Total)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := f.list.Execute(context.Background(), clinicA, ListFilter{Date: "16/01/2025"})
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.list.Execute(context.Background(), clinicA, ListFilter{Status: "done"})
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		res, err := f.list.Execute(context.Background(), clinicB, ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, res.Appointments)
		assert.Equal(t, 0, res.Meta.TotalPages)
	})
}

func TestListDateUsesClinicTimezone(t *testing.T) {
	f := newFixture(t)
	f.repo.addClinic("clinic-sp", "America/Sao_Paulo")
	f.repo.addUser("clinic-sp", "doc-sp", models.RoleDoctor, models.UserStatusActive)
	f.repo.addPatient("clinic-sp", "pat-sp")

	// 23:30 em São Paulo (UTC-3) já é dia 16 em UTC.
	late := time.Date(2025, 1, 16, 2, 30, 0, 0, time.UTC)
	_, err := f.create.Execute(context.Background(), "clinic-sp", CreateInput{
		DoctorID: "doc-sp", PatientID: "pat-sp", AppointmentDate: late,
	})
	require.NoError(t, err)

	res, err := f.list.Execute(context.Background(), "clinic-sp", ListFilter{Date: "2025-01-15"})
	require.NoError(t, err)
	assert.Len(t, res.Appointments, 1)

	res, err = f.list.Execute(context.Background(), "clinic-sp", ListFilter{Date: "2025-01-16"})
	require.NoError(t, err)
	assert.Empty(t, res.Appointments)
}

func TestNormalizePage(t *testing.T) {
	p, l := NormalizePage(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, 20, l)

	_, l = NormalizePage(3, 500)
	assert.Equal(t, MaxLimit, l)

	assert.Equal(t, 3, TotalPages(41, 20))
	assert.Equal(t, 0, TotalPages(0, 20))
}
