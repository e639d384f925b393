package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDev() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate cria/atualiza as tabelas e os índices auxiliares.
func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.WorkingHours{},
		&models.Patient{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// clínicas antigas sem fuso
	if err := db.Exec(`
        UPDATE clinics
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTimezone).Error; err != nil {
		return fmt.Errorf("backfill timezone: %w", err)
	}

	// busca de conflitos ignora cancelados
	if err := db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_appointments_blocking
        ON appointments (doctor_id, appointment_date)
        WHERE status <> 'cancelled'
    `).Error; err != nil {
		return fmt.Errorf("create blocking index: %w", err)
	}

	if err := db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_audit_logs_clinic_created
        ON audit_logs (clinic_id, created_at DESC)
    `).Error; err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}

	return nil
}
