package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListFilter chega cru da query string; Date é "YYYY-MM-DD".
type ListFilter struct {
	DoctorID  string
	PatientID string
	Status    string
	Date      string
	Page      int
	Limit     int
}

type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListResult struct {
	Appointments []models.Appointment `json:"appointments"`
	Meta         Meta                 `json:"meta"`
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	clinicID string,
	f ListFilter,
) (*ListResult, error) {

	page, limit := NormalizePage(f.Page, f.Limit)

	q := domain.ListQuery{
		DoctorID:  strings.TrimSpace(f.DoctorID),
		PatientID: strings.TrimSpace(f.PatientID),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	if f.Status != "" {
		s, err := domain.ParseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		q.Status = s
	}

	// --------------------------------------------------
	// Dia inteiro no fuso da clínica
	// --------------------------------------------------
	if f.Date != "" {
		clinic, err := loadClinic(ctx, uc.repo, clinicID)
		if err != nil {
			return nil, err
		}

		from, to, err := timezone.DayBounds(f.Date, timezone.Location(clinic.Timezone))
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
		}
		q.From, q.To = from, to
	}

	apps, total, err := uc.repo.ListAppointments(ctx, clinicID, q)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.Appointment{}
	}

	return &ListResult{
		Appointments: apps,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: TotalPages(total, limit),
		},
	}, nil
}

// NormalizePage aplica os padrões page=1, limit=20 e o teto de 100.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
