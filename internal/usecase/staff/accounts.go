package staff

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	clinicDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinic"
	staffDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// TokenIssuer emite o bearer token de um usuário.
type TokenIssuer interface {
	Generate(user *models.User) (string, error)
}

// EmailChecker confere se o domínio do e-mail existe.
type EmailChecker func(email string) bool

type RegisterInput struct {
	ClinicName    string `validate:"required,min=2,max=100"`
	ClinicSlug    string `validate:"required"`
	ClinicPhone   string `validate:"omitempty,max=20"`
	ClinicAddress string `validate:"omitempty,max=255"`
	Timezone      string

	staffDomain.Profile
}

type Session struct {
	Token  string         `json:"token"`
	User   *models.User   `json:"user"`
	Clinic *models.Clinic `json:"clinic"`
}

type Accounts struct {
	clinics    clinicDomain.Repository
	users      staffDomain.Repository
	tokens     TokenIssuer
	checkEmail EmailChecker
	audit      audit.Recorder
}

func NewAccounts(
	clinics clinicDomain.Repository,
	users staffDomain.Repository,
	tokens TokenIssuer,
	checkEmail EmailChecker,
	audit audit.Recorder,
) *Accounts {
	return &Accounts{
		clinics:    clinics,
		users:      users,
		tokens:     tokens,
		checkEmail: orAcceptAll(checkEmail),
		audit:      audit,
	}
}

func orAcceptAll(check EmailChecker) EmailChecker {
	if check == nil {
		return func(string) bool { return true }
	}
	return check
}

// Register cria a clínica e o seu primeiro ADMIN e já devolve a sessão.
func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.ClinicSlug = clinicDomain.NormalizeSlug(in.ClinicSlug)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := validators.Struct(in); err != nil {
		return nil, err
	}
	if !clinicDomain.IsValidSlug(in.ClinicSlug) {
		return nil, httperr.ErrValidation("invalid_slug", "Use apenas letras minúsculas, números e hífens no endereço da clínica.")
	}
	if in.Timezone != "" && !timezone.IsValid(in.Timezone) {
		return nil, httperr.ErrValidation("invalid_timezone", "Fuso horário inválido.")
	}

	exists, err := a.clinics.SlugExists(ctx, in.ClinicSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrConflict("slug_already_exists", "Este endereço de clínica já está em uso.")
	}

	if err := ensureEmailFree(ctx, a.users, a.checkEmail, in.Email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	tz := in.Timezone
	if tz == "" {
		tz = timezone.Default()
	}

	clinic := &models.Clinic{
		Name:     strings.TrimSpace(in.ClinicName),
		Slug:     in.ClinicSlug,
		Phone:    in.ClinicPhone,
		Address:  in.ClinicAddress,
		Timezone: tz,
	}
	admin := staffDomain.NewUser("", staffDomain.AdminInput{Profile: in.Profile}, hash)

	if err := a.clinics.Register(ctx, clinic, admin); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("already_registered", "Clínica ou e-mail já cadastrados.")
		}
		return nil, err
	}

	a.audit.Record(ctx, audit.Event{
		ClinicID: clinic.ID,
		UserID:   &admin.ID,
		Action:   "clinic_registered",
		Entity:   "clinic",
		EntityID: &clinic.ID,
	})

	zerolog.Ctx(ctx).Info().Str("clinic_id", clinic.ID).Str("slug", clinic.Slug).Msg("clinic registered")

	return a.session(admin, clinic)
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	invalid := httperr.ErrUnauthorized("invalid_credentials", "E-mail ou senha inválidos.")

	user, err := a.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, invalid
	}
	if user.Status != models.UserStatusActive {
		return nil, httperr.ErrForbidden("user_inactive", "Usuário inativo. Procure o administrador da clínica.")
	}

	clinic, err := a.clinics.GetByID(ctx, user.ClinicID)
	if err != nil {
		return nil, err
	}

	return a.session(user, clinic)
}

// Me devolve o usuário autenticado e a sua clínica.
func (a *Accounts) Me(ctx context.Context, clinicID, userID string) (*models.User, *models.Clinic, error) {
	user, err := a.users.Get(ctx, clinicID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
	}
	if err != nil {
		return nil, nil, err
	}

	clinic, err := a.clinics.GetByID(ctx, clinicID)
	if err != nil {
		return nil, nil, err
	}
	return user, clinic, nil
}

func ensureEmailFree(ctx context.Context, users staffDomain.Repository, checkEmail EmailChecker, email string) error {
	if !checkEmail(email) {
		return httperr.ErrValidation("invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return httperr.ErrConflict("email_already_registered", "Este e-mail já está cadastrado.")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (a *Accounts) session(user *models.User, clinic *models.Clinic) (*Session, error) {
	token, err := a.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user, Clinic: clinic}, nil
}
