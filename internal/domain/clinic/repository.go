package clinic

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	GetByID(
		ctx context.Context,
		id string,
	) (*models.Clinic, error)

	GetBySlug(
		ctx context.Context,
		slug string,
	) (*models.Clinic, error)

	SlugExists(
		ctx context.Context,
		slug string,
	) (bool, error)

	Update(
		ctx context.Context,
		c *models.Clinic,
	) error

	// Register cria a clínica e o seu primeiro ADMIN na mesma transação.
	Register(
		ctx context.Context,
		c *models.Clinic,
		admin *models.User,
	) error
}
