package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	patientDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	DefaultReason   = "Agendamento online"
	PublicDuration  = 30
	confirmationFmt = "Solicitação de agendamento recebida para %s às %s com %s. A clínica entrará em contato para confirmar."
)

// ======================================================
// Dependências (portas estreitas)
// ======================================================

type ClinicFinder interface {
	GetBySlug(ctx context.Context, slug string) (*models.Clinic, error)
}

type DoctorFinder interface {
	GetDoctor(ctx context.Context, clinicID, doctorID string) (*models.User, error)
}

type PatientDirectory interface {
	FindByPhone(ctx context.Context, clinicID, phone string) (*models.Patient, error)
	Create(ctx context.Context, p *models.Patient) error
}

type AppointmentCreator interface {
	Execute(ctx context.Context, clinicID string, in ucAppointment.CreateInput) (*models.Appointment, error)
}

// ======================================================
// INPUT / VIEW
// ======================================================

type Input struct {
	DoctorID        string    `validate:"required"`
	Name            string    `validate:"required,min=2,max=100"`
	Phone           string    `validate:"required,min=8,max=20"`
	Email           string    `validate:"omitempty,email,max=100"`
	AppointmentDate time.Time `validate:"required"`
	Reason          string    `validate:"max=255"`
}

type AppointmentSummary struct {
	ID              string                   `json:"id"`
	AppointmentDate time.Time                `json:"appointmentDate"`
	Duration        int                      `json:"duration"`
	Status          models.AppointmentStatus `json:"status"`
	Reason          string                   `json:"reason"`
}

type ClinicSummary struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type DoctorSummary struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// View nunca expõe ids internos além do id do agendamento.
type View struct {
	Appointment AppointmentSummary `json:"appointment"`
	Clinic      ClinicSummary      `json:"clinic"`
	Doctor      DoctorSummary      `json:"doctor"`
	Message     string             `json:"message"`
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	clinics  ClinicFinder
	doctors  DoctorFinder
	patients PatientDirectory
	create   AppointmentCreator
	now      func() time.Time
}

func NewBook(
	clinics ClinicFinder,
	doctors DoctorFinder,
	patients PatientDirectory,
	create AppointmentCreator,
) *Book {
	return &Book{
		clinics:  clinics,
		doctors:  doctors,
		patients: patients,
		create:   create,
		now:      time.Now,
	}
}

func (uc *Book) Execute(
	ctx context.Context,
	slug string,
	in Input,
) (*View, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = patientDomain.NormalizePhone(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Clínica
	// --------------------------------------------------
	clinic, err := resolveClinic(ctx, uc.clinics, slug)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data futura
	// --------------------------------------------------
	if !in.AppointmentDate.After(uc.now()) {
		return nil, httperr.ErrValidation("date_in_past", "Escolha um horário no futuro.")
	}

	// --------------------------------------------------
	// 3️⃣ Médico ativo da clínica
	// --------------------------------------------------
	doctor, err := uc.doctors.GetDoctor(ctx, clinic.ID, in.DoctorID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if doctor == nil || !doctor.IsActiveDoctor() {
		return nil, httperr.ErrNotFound("doctor_not_found", "Médico não encontrado nesta clínica.")
	}

	// --------------------------------------------------
	// 4️⃣ Paciente (busca por telefone ou cria)
	// --------------------------------------------------
	patient, err := uc.findOrCreatePatient(ctx, clinic.ID, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Agendamento pelo fluxo padrão
	// --------------------------------------------------
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = DefaultReason
	}
	duration := PublicDuration

	ap, err := uc.create.Execute(ctx, clinic.ID, ucAppointment.CreateInput{
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentDate: in.AppointmentDate,
		Duration:        &duration,
		Reason:          reason,
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("clinic_slug", clinic.Slug).
		Str("appointment_id", ap.ID).
		Msg("public booking created")

	local := ap.AppointmentDate.In(timezone.Location(clinic.Timezone))

	return &View{
		Appointment: AppointmentSummary{
			ID:              ap.ID,
			AppointmentDate: ap.AppointmentDate,
			Duration:        ap.Duration,
			Status:          ap.Status,
			Reason:          ap.Reason,
		},
		Clinic: ClinicSummary{
			Name:  clinic.Name,
			Phone: clinic.Phone,
		},
		Doctor: DoctorSummary{
			Name:           doctor.Name,
			Specialization: doctor.Specialization,
		},
		Message: fmt.Sprintf(confirmationFmt, local.Format("02/01/2006"), local.Format("15:04"), doctor.Name),
	}, nil
}

func (uc *Book) findOrCreatePatient(ctx context.Context, clinicID string, in Input) (*models.Patient, error) {
	existing, err := uc.patients.FindByPhone(ctx, clinicID, in.Phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	p := &models.Patient{
		ClinicID: clinicID,
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
	}
	if err := uc.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func resolveClinic(ctx context.Context, clinics ClinicFinder, slug string) (*models.Clinic, error) {
	clinic, err := clinics.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("clinic_not_found", "Clínica não encontrada.")
	}
	if err != nil {
		return nil, err
	}
	return clinic, nil
}
