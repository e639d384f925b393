package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	clinicDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinic"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ClinicGormRepository struct {
	db *gorm.DB
}

func NewClinicGormRepository(db *gorm.DB) *ClinicGormRepository {
	return &ClinicGormRepository{db: db}
}

func (r *ClinicGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Clinic, error) {

	var c models.Clinic
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClinicGormRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*models.Clinic, error) {

	var c models.Clinic
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClinicGormRepository) SlugExists(
	ctx context.Context,
	slug string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Clinic{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ClinicGormRepository) Update(
	ctx context.Context,
	c *models.Clinic,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Clinic{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":     c.Name,
			"phone":    c.Phone,
			"email":    c.Email,
			"address":  c.Address,
			"timezone": c.Timezone,
			"logo_url": c.LogoURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClinicGormRepository) Register(
	ctx context.Context,
	c *models.Clinic,
	admin *models.User,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}

		admin.ClinicID = c.ID
		return tx.Omit("Clinic").Create(admin).Error
	})
}

// Compile-time check
var _ clinicDomain.Repository = (*ClinicGormRepository)(nil)
