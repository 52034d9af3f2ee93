package reminder

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Type string

const (
	TypeMaintenance Type = "manutenção"
	TypeMilestone   Type = "milestone"
	TypeBirthday    Type = "aniversario"
	TypePromotion   Type = "promocao"
)

func ParseType(s string) (Type, bool) {
	switch t := Type(s); t {
	case TypeMaintenance, TypeMilestone, TypeBirthday, TypePromotion:
		return t, true
	}
	return "", false
}

type Status string

const (
	StatusPending Status = "pendente"
	StatusSent    Status = "enviado"
)

// MarkSent é a única transição possível de um lembrete.
func MarkSent(r *models.Reminder, now time.Time) error {
	if Status(r.Status) != StatusPending {
		return httperr.ErrBusiness("reminder_already_sent")
	}

	r.Status = string(StatusSent)
	r.SentDate = &now
	return nil
}
