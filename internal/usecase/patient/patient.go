package patient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	patientDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUTS
// ======================================================

type CreateInput struct {
	Name        string `validate:"required,min=2,max=100"`
	Phone       string `validate:"required,min=8,max=20"`
	Email       string `validate:"omitempty,email,max=100"`
	DateOfBirth *time.Time
	Gender      string `validate:"omitempty,max=20"`
	Notes       string
}

type UpdateInput struct {
	Name        *string `validate:"omitempty,min=2,max=100"`
	Phone       *string `validate:"omitempty,min=8,max=20"`
	Email       *string `validate:"omitempty,email,max=100"`
	DateOfBirth *time.Time
	Gender      *string `validate:"omitempty,max=20"`
	Notes       *string
}

type ListResult struct {
	Patients []models.Patient   `json:"patients"`
	Meta     ucAppointment.Meta `json:"meta"`
}

func errPatientNotFound() error {
	return httperr.ErrNotFound("patient_not_found", "Paciente não encontrado.")
}

// ======================================================
// SERVICE
// ======================================================

// Directory agrupa os casos de uso do cadastro de pacientes.
type Directory struct {
	repo  patientDomain.Repository
	audit audit.Recorder
}

func NewDirectory(repo patientDomain.Repository, audit audit.Recorder) *Directory {
	return &Directory{repo: repo, audit: audit}
}

func (d *Directory) List(ctx context.Context, clinicID, search string, page, limit int) (*ListResult, error) {
	page, limit = ucAppointment.NormalizePage(page, limit)

	patients, total, err := d.repo.List(ctx, clinicID, patientDomain.ListQuery{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if patients == nil {
		patients = []models.Patient{}
	}

	return &ListResult{
		Patients: patients,
		Meta: ucAppointment.Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: ucAppointment.TotalPages(total, limit),
		},
	}, nil
}

func (d *Directory) Get(ctx context.Context, clinicID, id string) (*models.Patient, error) {
	p, err := d.repo.Get(ctx, clinicID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errPatientNotFound()
	}
	return p, err
}

func (d *Directory) FindByPhone(ctx context.Context, clinicID, phone string) (*models.Patient, error) {
	p, err := d.repo.FindByPhone(ctx, clinicID, patientDomain.NormalizePhone(phone))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errPatientNotFound()
	}
	return p, err
}

func (d *Directory) Create(ctx context.Context, clinicID string, in CreateInput) (*models.Patient, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = patientDomain.NormalizePhone(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	if _, err := d.repo.FindByPhone(ctx, clinicID, in.Phone); err == nil {
		return nil, httperr.ErrConflict("phone_already_registered", "Já existe um paciente com este telefone.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	p := &models.Patient{
		ClinicID:    clinicID,
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Notes:       in.Notes,
	}
	if err := d.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	d.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "patient_created",
		Entity:   "patient",
		EntityID: &p.ID,
	})

	return p, nil
}

func (d *Directory) Update(ctx context.Context, clinicID, id string, in UpdateInput) (*models.Patient, error) {
	if in.Phone != nil {
		normalized := patientDomain.NormalizePhone(*in.Phone)
		in.Phone = &normalized
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	p, err := d.Get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	if in.Phone != nil && *in.Phone != p.Phone {
		other, err := d.repo.FindByPhone(ctx, clinicID, *in.Phone)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, httperr.ErrConflict("phone_already_registered", "Já existe um paciente com este telefone.")
		}
		p.Phone = *in.Phone
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}

	if err := d.repo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errPatientNotFound()
		}
		return nil, err
	}

	d.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "patient_updated",
		Entity:   "patient",
		EntityID: &p.ID,
	})

	return p, nil
}

// Delete recusa pacientes com histórico de agendamentos.
func (d *Directory) Delete(ctx context.Context, clinicID, id string) error {
	if _, err := d.Get(ctx, clinicID, id); err != nil {
		return err
	}

	has, err := d.repo.HasAppointments(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if has {
		return httperr.ErrConflict(
			"patient_has_appointments",
			"Paciente possui agendamentos e não pode ser removido.",
		)
	}

	if err := d.repo.Delete(ctx, clinicID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errPatientNotFound()
		}
		return err
	}

	d.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "patient_deleted",
		Entity:   "patient",
		EntityID: &id,
	})

	return nil
}
