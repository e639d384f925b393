package appointment

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica a troca de status: legalidade primeiro, permissão depois.
func Transition(ap *models.Appointment, to Status, role models.Role) error {
	if err := CanTransition(ap.Status, to); err != nil {
		return err
	}
	if err := CanSetStatus(to, role); err != nil {
		return err
	}

	ap.Status = to
	return nil
}
