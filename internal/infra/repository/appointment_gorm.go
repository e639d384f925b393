package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	apptDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClinicByID(
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

func (r *AppointmentGormRepository) GetClinicBySlug(
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

// --------------------------------------------------
// Doctor / Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	clinicID string,
	doctorID string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", doctorID, clinicID).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *AppointmentGormRepository) LockDoctor(
	ctx context.Context,
	clinicID string,
	doctorID string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND clinic_id = ?", doctorID, clinicID).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *AppointmentGormRepository) GetPatient(
	ctx context.Context,
	clinicID string,
	patientID string,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", patientID, clinicID).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func withSummaries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Doctor", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "specialization", "phone")
		}).
		Preload("Patient", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "phone", "email", "date_of_birth", "gender", "notes")
		})
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	clinicID string,
	q apptDomain.ListQuery,
) ([]models.Appointment, int64, error) {

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("clinic_id = ?", clinicID)
		if q.DoctorID != "" {
			db = db.Where("doctor_id = ?", q.DoctorID)
		}
		if q.PatientID != "" {
			db = db.Where("patient_id = ?", q.PatientID)
		}
		if q.Status != "" {
			db = db.Where("status = ?", q.Status)
		}
		if !q.From.IsZero() {
			db = db.Where("appointment_date >= ?", q.From)
		}
		if !q.To.IsZero() {
			db = db.Where("appointment_date <= ?", q.To)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := offsetLimit(withSummaries(r.db.WithContext(ctx)), q.Limit, q.Offset).
		Scopes(filter).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	clinicID string,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := withSummaries(r.db.WithContext(ctx)).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	clinicID string,
	doctorID string,
	before time.Time,
	excludeID string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "doctor_id", "appointment_date", "duration", "status").
		Where(
			"clinic_id = ? AND doctor_id = ? AND status NOT IN ? AND appointment_date < ?",
			clinicID,
			doctorID,
			[]string{string(models.StatusCancelled)},
			before,
		)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("appointment_date ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND clinic_id = ?", ap.ID, ap.ClinicID).
		Updates(map[string]any{
			"doctor_id":        ap.DoctorID,
			"patient_id":       ap.PatientID,
			"appointment_date": ap.AppointmentDate,
			"duration":         ap.Duration,
			"reason":           ap.Reason,
			"notes":            ap.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND clinic_id = ?", ap.ID, ap.ClinicID).
		Update("status", ap.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	clinicID string,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(repo apptDomain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	doctorID string,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND weekday = ?", doctorID, weekday).
		First(&wh).Error; err != nil {
		return nil, notFound(err)
	}
	return &wh, nil
}

// ListAppointmentsForPeriod inclui consultas iniciadas antes de `start`
// que ainda podem invadir o período (até a duração máxima).
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicID string,
	doctorID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	lookback := start.Add(-time.Duration(apptDomain.MaxDurationMinutes) * time.Minute)

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "appointment_date", "duration", "status").
		Where(
			"clinic_id = ? AND doctor_id = ? AND status <> ? AND appointment_date >= ? AND appointment_date < ?",
			clinicID,
			doctorID,
			models.StatusCancelled,
			lookback,
			end,
		).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ apptDomain.Repository = (*AppointmentGormRepository)(nil)
