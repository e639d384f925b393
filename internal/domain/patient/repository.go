package patient

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ListQuery filtra pacientes por nome, telefone ou e-mail (Search) com paginação.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	List(
		ctx context.Context,
		clinicID string,
		q ListQuery,
	) ([]models.Patient, int64, error)

	Get(
		ctx context.Context,
		clinicID string,
		id string,
	) (*models.Patient, error)

	FindByPhone(
		ctx context.Context,
		clinicID string,
		phone string,
	) (*models.Patient, error)

	Create(
		ctx context.Context,
		p *models.Patient,
	) error

	Update(
		ctx context.Context,
		p *models.Patient,
	) error

	Delete(
		ctx context.Context,
		clinicID string,
		id string,
	) error

	// HasAppointments indica se ainda existem agendamentos ligados ao paciente.
	HasAppointments(
		ctx context.Context,
		clinicID string,
		id string,
	) (bool, error)
}
