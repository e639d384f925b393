package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// memRepo é um domain.Repository em memória para os testes de caso de uso.
type memRepo struct {
	mu sync.Mutex

	clinics      map[string]models.Clinic
	users        map[string]models.User
	patients     map[string]models.Patient
	appointments map[string]models.Appointment
	hours        map[string]models.WorkingHours

	seq int
}

func newMemRepo() *memRepo {
	return &memRepo{
		clinics:      map[string]models.Clinic{},
		users:        map[string]models.User{},
		patients:     map[string]models.Patient{},
		appointments: map[string]models.Appointment{},
		hours:        map[string]models.WorkingHours{},
	}
}

func (r *memRepo) addClinic(id, tz string) models.Clinic {
	c := models.Clinic{BaseModel: models.BaseModel{ID: id}, Name: "Clínica " + id, Slug: id, Timezone: tz}
	r.clinics[id] = c
	return c
}

func (r *memRepo) addUser(clinicID, id string, role models.Role, status models.UserStatus) models.User {
	u := models.User{
		BaseModel:      models.BaseModel{ID: id},
		ClinicID:       clinicID,
		Name:           "User " + id,
		Role:           role,
		Status:         status,
		Specialization: "Clínico geral",
	}
	r.users[id] = u
	return u
}

func (r *memRepo) addPatient(clinicID, id string) models.Patient {
	p := models.Patient{BaseModel: models.BaseModel{ID: id}, ClinicID: clinicID, Name: "Patient " + id, Phone: "1199999" + id}
	r.patients[id] = p
	return p
}

func (r *memRepo) addAppointment(ap models.Appointment) models.Appointment {
	if ap.ID == "" {
		r.seq++
		ap.ID = fmt.Sprintf("ap-%d", r.seq)
	}
	if ap.Duration == 0 {
		ap.Duration = models.DefaultDurationMinutes
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *memRepo) setHours(wh models.WorkingHours) {
	r.hours[fmt.Sprintf("%s|%d", wh.DoctorID, wh.Weekday)] = wh
}

// -------- Clinic --------

func (r *memRepo) GetClinicByID(_ context.Context, id string) (*models.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clinics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) GetClinicBySlug(_ context.Context, slug string) (*models.Clinic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clinics {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// -------- Doctor / Patient --------

func (r *memRepo) GetDoctor(_ context.Context, clinicID, doctorID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[doctorID]
	if !ok || u.ClinicID != clinicID {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) LockDoctor(ctx context.Context, clinicID, doctorID string) (*models.User, error) {
	return r.GetDoctor(ctx, clinicID, doctorID)
}

func (r *memRepo) GetPatient(_ context.Context, clinicID, patientID string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[patientID]
	if !ok || p.ClinicID != clinicID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// -------- Appointment (read) --------

func (r *memRepo) withSummaries(ap models.Appointment) models.Appointment {
	if u, ok := r.users[ap.DoctorID]; ok {
		ap.Doctor = &models.User{BaseModel: u.BaseModel, Name: u.Name, Specialization: u.Specialization, Phone: u.Phone}
	}
	if p, ok := r.patients[ap.PatientID]; ok {
		ap.Patient = &p
	}
	return ap
}

func (r *memRepo) ListAppointments(_ context.Context, clinicID string, q domain.ListQuery) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClinicID != clinicID {
			continue
		}
		if q.DoctorID != "" && ap.DoctorID != q.DoctorID {
			continue
		}
		if q.PatientID != "" && ap.PatientID != q.PatientID {
			continue
		}
		if q.Status != "" && ap.Status != q.Status {
			continue
		}
		if !q.From.IsZero() && ap.AppointmentDate.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && ap.AppointmentDate.After(q.To) {
			continue
		}
		out = append(out, r.withSummaries(ap))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDate.Before(out[j].AppointmentDate)
	})

	total := int64(len(out))
	if q.Offset >= len(out) {
		return []models.Appointment{}, total, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (r *memRepo) GetAppointment(_ context.Context, clinicID, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok || ap.ClinicID != clinicID {
		return nil, domain.ErrNotFound
	}
	ap = r.withSummaries(ap)
	return &ap, nil
}

func (r *memRepo) ListBlockingAppointments(_ context.Context, clinicID, doctorID string, before time.Time, excludeID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClinicID != clinicID || ap.DoctorID != doctorID {
			continue
		}
		if ap.Status == models.StatusCancelled || ap.ID == excludeID {
			continue
		}
		if !ap.AppointmentDate.Before(before) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

// -------- Appointment (write) --------

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ap.ID = fmt.Sprintf("ap-%d", r.seq)
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.appointments[ap.ID]
	if !ok || cur.ClinicID != ap.ClinicID {
		return domain.ErrNotFound
	}
	cur.DoctorID = ap.DoctorID
	cur.PatientID = ap.PatientID
	cur.AppointmentDate = ap.AppointmentDate
	cur.Duration = ap.Duration
	cur.Reason = ap.Reason
	cur.Notes = ap.Notes
	r.appointments[ap.ID] = cur
	return nil
}

func (r *memRepo) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.appointments[ap.ID]
	if !ok || cur.ClinicID != ap.ClinicID {
		return domain.ErrNotFound
	}
	cur.Status = ap.Status
	r.appointments[ap.ID] = cur
	return nil
}

func (r *memRepo) DeleteAppointment(_ context.Context, clinicID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.appointments[id]
	if !ok || cur.ClinicID != clinicID {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *memRepo) WithinTx(_ context.Context, fn func(repo domain.Repository) error) error {
	return fn(r)
}

// -------- Availability --------

func (r *memRepo) GetWorkingHours(_ context.Context, doctorID string, weekday int) (*models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wh, ok := r.hours[fmt.Sprintf("%s|%d", doctorID, weekday)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &wh, nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, clinicID, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClinicID != clinicID || ap.DoctorID != doctorID || ap.Status == models.StatusCancelled {
			continue
		}
		if ap.EndsAt().After(start) && ap.AppointmentDate.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)

// -------- Audit --------

type memAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *memAudit) Record(_ context.Context, ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *memAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
