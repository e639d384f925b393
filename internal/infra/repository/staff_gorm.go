package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	staffDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *StaffGormRepository) List(
	ctx context.Context,
	clinicID string,
	role models.Role,
) ([]models.User, error) {

	q := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID)
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *StaffGormRepository) ListActiveDoctors(
	ctx context.Context,
	clinicID string,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where(
			"clinic_id = ? AND role = ? AND status = ?",
			clinicID, models.RoleDoctor, models.UserStatusActive,
		).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *StaffGormRepository) Get(
	ctx context.Context,
	clinicID string,
	id string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *StaffGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *StaffGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Omit("Clinic").Create(u).Error
}

func (r *StaffGormRepository) UpdateStatus(
	ctx context.Context,
	clinicID string,
	id string,
	status models.UserStatus,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *StaffGormRepository) ListWorkingHours(
	ctx context.Context,
	clinicID string,
	doctorID string,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND doctor_id = ?", clinicID, doctorID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *StaffGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	clinicID string,
	doctorID string,
	days []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("clinic_id = ? AND doctor_id = ?", clinicID, doctorID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(days) == 0 {
			return nil
		}

		for i := range days {
			days[i].ClinicID = clinicID
			days[i].DoctorID = doctorID
		}

		return tx.Create(&days).Error
	})
}

// Compile-time check
var _ staffDomain.Repository = (*StaffGormRepository)(nil)
