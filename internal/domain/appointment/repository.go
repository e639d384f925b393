package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var ErrNotFound = domain.ErrNotFound

// ListQuery são os filtros já normalizados da listagem.
type ListQuery struct {
	DoctorID  string
	PatientID string
	Status    Status

	// Janela [From, To] inclusiva; zero = sem filtro.
	From time.Time
	To   time.Time

	Limit  int
	Offset int
}

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id string,
	) (*models.Clinic, error)

	GetClinicBySlug(
		ctx context.Context,
		slug string,
	) (*models.Clinic, error)

	// -------- Doctor / Patient --------
	GetDoctor(
		ctx context.Context,
		clinicID string,
		doctorID string,
	) (*models.User, error)

	// LockDoctor lê o médico com bloqueio de linha; só faz sentido dentro de WithinTx.
	LockDoctor(
		ctx context.Context,
		clinicID string,
		doctorID string,
	) (*models.User, error)

	GetPatient(
		ctx context.Context,
		clinicID string,
		patientID string,
	) (*models.Patient, error)

	// -------- Appointment (read) --------
	ListAppointments(
		ctx context.Context,
		clinicID string,
		q ListQuery,
	) ([]models.Appointment, int64, error)

	GetAppointment(
		ctx context.Context,
		clinicID string,
		id string,
	) (*models.Appointment, error)

	// ListBlockingAppointments devolve os agendamentos não cancelados do médico
	// que começam antes de `before`, sem o excludeID.
	ListBlockingAppointments(
		ctx context.Context,
		clinicID string,
		doctorID string,
		before time.Time,
		excludeID string,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment grava apenas os campos editáveis (nunca o status).
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		clinicID string,
		id string,
	) error

	WithinTx(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		doctorID string,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicID string,
		doctorID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
