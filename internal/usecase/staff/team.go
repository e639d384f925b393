package staff

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	staffDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Team agrupa a gestão da equipe da clínica e da grade dos médicos.
type Team struct {
	users      staffDomain.Repository
	checkEmail EmailChecker
	audit      audit.Recorder
}

func NewTeam(
	users staffDomain.Repository,
	checkEmail EmailChecker,
	audit audit.Recorder,
) *Team {
	return &Team{
		users:      users,
		checkEmail: orAcceptAll(checkEmail),
		audit:      audit,
	}
}

func errUserNotFound() error {
	return httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
}

func (t *Team) List(ctx context.Context, clinicID, role string) ([]models.User, error) {
	var r models.Role
	if role != "" {
		r = models.NormalizeRole(role)
		switch r {
		case models.RoleAdmin, models.RoleDoctor, models.RoleReceptionist:
		default:
			return nil, httperr.ErrValidation("invalid_role", "Papel inválido.")
		}
	}

	users, err := t.users.List(ctx, clinicID, r)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (t *Team) ListDoctors(ctx context.Context, clinicID string) ([]models.User, error) {
	docs, err := t.users.ListActiveDoctors(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.User{}
	}
	return docs, nil
}

func (t *Team) Create(ctx context.Context, clinicID string, in staffDomain.CreateInput) (*models.User, error) {
	if err := staffDomain.Validate(in); err != nil {
		return nil, err
	}

	u := staffDomain.NewUser(clinicID, in, "")
	if err := ensureEmailFree(ctx, t.users, t.checkEmail, u.Email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(staffDomain.Password(in))
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if err := t.users.Create(ctx, u); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("email_already_registered", "Este e-mail já está cadastrado.")
		}
		return nil, err
	}

	t.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	zerolog.Ctx(ctx).Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("staff member created")

	return u, nil
}

// UpdateStatus ativa ou inativa um membro. Ninguém inativa a si mesmo.
func (t *Team) UpdateStatus(ctx context.Context, clinicID, actorID, id, status string) (*models.User, error) {
	target := models.UserStatus(status)
	if target != models.UserStatusActive && target != models.UserStatusInactive {
		return nil, httperr.ErrValidation("invalid_user_status", "Status deve ser ACTIVE ou INACTIVE.")
	}
	if id == actorID && target == models.UserStatusInactive {
		return nil, httperr.ErrValidation("cannot_deactivate_self", "Você não pode inativar o próprio usuário.")
	}

	u, err := t.users.Get(ctx, clinicID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errUserNotFound()
	}
	if err != nil {
		return nil, err
	}

	if err := t.users.UpdateStatus(ctx, clinicID, id, target); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errUserNotFound()
		}
		return nil, err
	}
	u.Status = target

	t.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "user_status_changed",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"status": target},
	})

	return u, nil
}

// ===============================
// Working hours
// ===============================

func (t *Team) doctor(ctx context.Context, clinicID, doctorID string) (*models.User, error) {
	u, err := t.users.Get(ctx, clinicID, doctorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("doctor_not_found", "Médico não encontrado nesta clínica.")
	}
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleDoctor {
		return nil, httperr.ErrValidation("not_a_doctor", "Expediente só pode ser definido para médicos.")
	}
	return u, nil
}

func (t *Team) WorkingHours(ctx context.Context, clinicID, doctorID string) ([]models.WorkingHours, error) {
	if _, err := t.doctor(ctx, clinicID, doctorID); err != nil {
		return nil, err
	}

	hours, err := t.users.ListWorkingHours(ctx, clinicID, doctorID)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = []models.WorkingHours{}
	}
	return hours, nil
}

// ReplaceWorkingHours: ADMIN altera qualquer médico; DOCTOR apenas a própria grade.
func (t *Team) ReplaceWorkingHours(
	ctx context.Context,
	clinicID string,
	actorID string,
	actorRole models.Role,
	doctorID string,
	days []models.WorkingHours,
) ([]models.WorkingHours, error) {

	switch models.NormalizeRole(string(actorRole)) {
	case models.RoleAdmin:
	case models.RoleDoctor:
		if actorID != doctorID {
			return nil, httperr.ErrForbidden("forbidden", "Médicos só podem alterar o próprio expediente.")
		}
	default:
		return nil, httperr.ErrForbidden("forbidden", "Sem permissão para alterar expedientes.")
	}

	if _, err := t.doctor(ctx, clinicID, doctorID); err != nil {
		return nil, err
	}
	if err := staffDomain.ValidateWorkingHours(days); err != nil {
		return nil, err
	}

	if err := t.users.ReplaceWorkingHours(ctx, clinicID, doctorID, days); err != nil {
		return nil, err
	}

	t.audit.Record(ctx, audit.Event{
		ClinicID: clinicID,
		Action:   "working_hours_updated",
		Entity:   "user",
		EntityID: &doctorID,
	})

	return t.users.ListWorkingHours(ctx, clinicID, doctorID)
}
