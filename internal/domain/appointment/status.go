package appointment

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusPending   = models.StatusPending
	StatusConfirmed = models.StatusConfirmed
	StatusCompleted = models.StatusCompleted
	StatusCancelled = models.StatusCancelled
)

// AllStatuses lista os estados na ordem do ciclo de vida.
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// AllowedTransitions é a única fonte da máquina de estados.
func AllowedTransitions(from Status) []Status {
	switch from {
	case StatusPending:
		return []Status{StatusConfirmed, StatusCancelled}
	case StatusConfirmed:
		return []Status{StatusCompleted, StatusCancelled}
	case StatusCompleted, StatusCancelled:
		return nil
	}
	return nil
}

func IsTerminal(s Status) bool {
	return IsValid(s) && len(AllowedTransitions(s)) == 0
}

func IsValid(s Status) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValid(s) {
		return "", httperr.ErrValidation(
			"invalid_status",
			fmt.Sprintf("Status inválido: '%s'.", raw),
		)
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

// CanTransition valida a legalidade da transição from → to.
func CanTransition(from, to Status) error {
	allowed := AllowedTransitions(from)
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}

	return httperr.ErrValidation(
		"invalid_transition",
		fmt.Sprintf(
			"Não é possível alterar o status de '%s' para '%s'. Status permitidos a partir de '%s': %s.",
			from, to, from, describe(allowed),
		),
	)
}

// CanSetStatus verifica se o papel pode levar o agendamento ao status alvo.
// Apenas ADMIN e DOCTOR concluem atendimentos.
func CanSetStatus(to Status, role models.Role) error {
	if to != StatusCompleted {
		return nil
	}

	switch models.NormalizeRole(string(role)) {
	case models.RoleAdmin, models.RoleDoctor:
		return nil
	}

	return httperr.ErrForbidden(
		"forbidden_transition",
		"Apenas administradores e médicos podem concluir atendimentos.",
	)
}

// EnsureMutable barra edições em agendamentos finalizados.
func EnsureMutable(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrValidation(
			"appointment_locked",
			fmt.Sprintf("Agendamentos com status '%s' não podem ser alterados.", current),
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

func describe(statuses []Status) string {
	if len(statuses) == 0 {
		return "nenhum"
	}
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
