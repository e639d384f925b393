package staff

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type memUsers struct {
	rows  map[string]*models.User
	hours map[string][]models.WorkingHours
	seq   int
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[string]*models.User{}, hours: map[string][]models.WorkingHours{}}
}

func (m *memUsers) add(u models.User) *models.User {
	if u.ID == "" {
		m.seq++
		u.ID = fmt.Sprintf("u%d", m.seq)
	}
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}
	m.rows[u.ID] = &u
	return &u
}

func (m *memUsers) List(_ context.Context, clinicID string, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range m.rows {
		if u.ClinicID == clinicID && (role == "" || u.Role == role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) ListActiveDoctors(_ context.Context, clinicID string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.rows {
		if u.ClinicID == clinicID && u.IsActiveDoctor() {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) Get(_ context.Context, clinicID, id string) (*models.User, error) {
	u, ok := m.rows[id]
	if !ok || u.ClinicID != clinicID {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.seq++
	u.ID = fmt.Sprintf("u%d", m.seq)
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) UpdateStatus(_ context.Context, clinicID, id string, status models.UserStatus) error {
	u, ok := m.rows[id]
	if !ok || u.ClinicID != clinicID {
		return domain.ErrNotFound
	}
	u.Status = status
	return nil
}

func (m *memUsers) ListWorkingHours(_ context.Context, _ string, doctorID string) ([]models.WorkingHours, error) {
	return m.hours[doctorID], nil
}

func (m *memUsers) ReplaceWorkingHours(_ context.Context, clinicID, doctorID string, days []models.WorkingHours) error {
	out := make([]models.WorkingHours, 0, len(days))
	for _, d := range days {
		d.ClinicID = clinicID
		d.DoctorID = doctorID
		out = append(out, d)
	}
	m.hours[doctorID] = out
	return nil
}

type memClinics struct {
	rows map[string]*models.Clinic
	seq  int
	// users recebe o admin criado em Register.
	users *memUsers
}

func (m *memClinics) GetByID(_ context.Context, id string) (*models.Clinic, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memClinics) GetBySlug(_ context.Context, slug string) (*models.Clinic, error) {
	for _, c := range m.rows {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memClinics) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := m.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (m *memClinics) Update(_ context.Context, c *models.Clinic) error {
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memClinics) Register(ctx context.Context, c *models.Clinic, admin *models.User) error {
	m.seq++
	c.ID = fmt.Sprintf("c%d", m.seq)
	cp := *c
	m.rows[c.ID] = &cp

	admin.ClinicID = c.ID
	return m.users.Create(ctx, admin)
}

type stubTokens struct{}

func (stubTokens) Generate(u *models.User) (string, error) { return "token-" + u.ID, nil }

type memAudit struct{ events []audit.Event }

func (m *memAudit) Record(_ context.Context, e audit.Event) { m.events = append(m.events, e) }

func (m *memAudit) actions() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Action)
	}
	return out
}
