package staff

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// List filtra por papel quando role != "".
	List(
		ctx context.Context,
		clinicID string,
		role models.Role,
	) ([]models.User, error)

	ListActiveDoctors(
		ctx context.Context,
		clinicID string,
	) ([]models.User, error)

	Get(
		ctx context.Context,
		clinicID string,
		id string,
	) (*models.User, error)

	// FindByEmail busca em todas as clínicas: o e-mail é único globalmente.
	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	Create(
		ctx context.Context,
		u *models.User,
	) error

	UpdateStatus(
		ctx context.Context,
		clinicID string,
		id string,
		status models.UserStatus,
	) error

	ListWorkingHours(
		ctx context.Context,
		clinicID string,
		doctorID string,
	) ([]models.WorkingHours, error)

	// ReplaceWorkingHours apaga e recria a grade do médico numa transação.
	ReplaceWorkingHours(
		ctx context.Context,
		clinicID string,
		doctorID string,
		days []models.WorkingHours,
	) error
}
