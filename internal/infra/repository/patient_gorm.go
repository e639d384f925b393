package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	patientDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

func (r *PatientGormRepository) List(
	ctx context.Context,
	clinicID string,
	q patientDomain.ListQuery,
) ([]models.Patient, int64, error) {

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("clinic_id = ?", clinicID)
		if s := strings.TrimSpace(q.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			db = db.Where(
				"(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)",
				like, like, like,
			)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	if err := offsetLimit(r.db.WithContext(ctx), q.Limit, q.Offset).
		Scopes(filter).
		Order("name ASC").
		Find(&patients).Error; err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *PatientGormRepository) Get(
	ctx context.Context,
	clinicID string,
	id string,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PatientGormRepository) FindByPhone(
	ctx context.Context,
	clinicID string,
	phone string,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND phone = ?", clinicID, phone).
		Order("created_at ASC").
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PatientGormRepository) Create(
	ctx context.Context,
	p *models.Patient,
) error {
	return r.db.WithContext(ctx).Omit("Clinic").Create(p).Error
}

func (r *PatientGormRepository) Update(
	ctx context.Context,
	p *models.Patient,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ? AND clinic_id = ?", p.ID, p.ClinicID).
		Updates(map[string]any{
			"name":          p.Name,
			"phone":         p.Phone,
			"email":         p.Email,
			"date_of_birth": p.DateOfBirth,
			"gender":        p.Gender,
			"notes":         p.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PatientGormRepository) Delete(
	ctx context.Context,
	clinicID string,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Delete(&models.Patient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PatientGormRepository) HasAppointments(
	ctx context.Context,
	clinicID string,
	id string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("clinic_id = ? AND patient_id = ?", clinicID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ patientDomain.Repository = (*PatientGormRepository)(nil)
