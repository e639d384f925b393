package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Event struct {
	ClinicID string
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Recorder grava eventos de auditoria. Falhas são logadas e nunca
// interrompem a requisição.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) {
	if err := l.Log(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("action", ev.Action).
			Str("entity", ev.Entity).
			Msg("audit write failed")
	}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	userID := ev.UserID
	if userID == nil {
		userID = ActorFrom(ctx)
	}

	row := models.AuditLog{
		ID:       uuid.NewString(),
		ClinicID: ev.ClinicID,
		UserID:   userID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// ListQuery filtra a trilha por ação e entidade.
type ListQuery struct {
	Action string
	Entity string
	Limit  int
	Offset int
}

func (l *Logger) List(
	ctx context.Context,
	clinicID string,
	q ListQuery,
) ([]models.AuditLog, int64, error) {

	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("clinic_id = ?", clinicID)
		if q.Action != "" {
			db = db.Where("action = ?", q.Action)
		}
		if q.Entity != "" {
			db = db.Where("entity = ?", q.Entity)
		}
		return db
	}

	var total int64
	if err := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	db := l.db.WithContext(ctx).Scopes(filter).Order("created_at DESC")
	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}
	if err := db.Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Nop descarta todos os eventos.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}

var _ Recorder = (*Logger)(nil)
