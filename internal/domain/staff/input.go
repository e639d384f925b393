package staff

import (
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ===============================
// Tagged union de criação de membros da equipe
// ===============================

// Profile são os campos comuns a qualquer papel.
type Profile struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email,max=100"`
	Password string `validate:"required,min=8,max=72"`
	Phone    string `validate:"omitempty,max=20"`
}

// CreateInput é implementado apenas por DoctorInput, AdminInput e ReceptionistInput.
type CreateInput interface {
	profile() Profile
}

type DoctorInput struct {
	Profile
	Specialization string `validate:"required,max=100"`
}

type AdminInput struct {
	Profile
}

type ReceptionistInput struct {
	Profile
}

func (in DoctorInput) profile() Profile       { return in.Profile }
func (in AdminInput) profile() Profile        { return in.Profile }
func (in ReceptionistInput) profile() Profile { return in.Profile }

// NewCreateInput monta a variante certa a partir do papel informado na requisição.
func NewCreateInput(role string, p Profile, specialization string) (CreateInput, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Name = strings.TrimSpace(p.Name)

	switch models.NormalizeRole(role) {
	case models.RoleDoctor:
		return DoctorInput{Profile: p, Specialization: strings.TrimSpace(specialization)}, nil
	case models.RoleAdmin:
		return AdminInput{Profile: p}, nil
	case models.RoleReceptionist:
		return ReceptionistInput{Profile: p}, nil
	}

	return nil, httperr.ErrValidation(
		"invalid_role",
		"Papel inválido. Use ADMIN, DOCTOR ou RECEPTIONIST.",
	)
}

// Validate valida cada variante com as suas próprias regras.
func Validate(in CreateInput) error {
	switch v := in.(type) {
	case DoctorInput:
		return validators.Struct(v)
	case AdminInput:
		return validators.Struct(v)
	case ReceptionistInput:
		return validators.Struct(v)
	case nil:
		return httperr.ErrValidation("invalid_role", "Papel não informado.")
	default:
		return httperr.ErrValidation("invalid_role", "Papel não suportado.")
	}
}

func RoleOf(in CreateInput) models.Role {
	switch in.(type) {
	case DoctorInput:
		return models.RoleDoctor
	case AdminInput:
		return models.RoleAdmin
	case ReceptionistInput:
		return models.RoleReceptionist
	}
	return ""
}

// NewUser materializa o usuário já com a senha em hash.
func NewUser(clinicID string, in CreateInput, passwordHash string) *models.User {
	p := in.profile()

	u := &models.User{
		ClinicID:     clinicID,
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: passwordHash,
		Phone:        p.Phone,
		Role:         RoleOf(in),
		Status:       models.UserStatusActive,
	}

	if d, ok := in.(DoctorInput); ok {
		u.Specialization = d.Specialization
	}

	return u
}

// Password devolve a senha em claro da variante, para hash.
func Password(in CreateInput) string {
	return in.profile().Password
}
