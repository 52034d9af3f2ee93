package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "agendado"
	StatusConfirmed Status = "confirmado"
	StatusCompleted Status = "realizado"
	StatusCancelled Status = "cancelado"
)

// ===============================
// Validations
// ===============================

// IsActive informa se o agendamento ainda ocupa horários na agenda
func IsActive(status string) bool {
	return Status(status) != StatusCancelled
}

// OpenStatuses lista os estados que ainda aceitam cancelamento ou conclusão.
func OpenStatuses() []string {
	return []string{string(StatusScheduled), string(StatusConfirmed)}
}

func isOpen(current Status) bool {
	return current == StatusScheduled || current == StatusConfirmed
}

// CanConfirm define se um agendamento pode ser confirmado
func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
