package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// transition aplica uma ação de domínio simples (confirmar, cancelar) e
// persiste o resultado.
type transition struct {
	repo   domain.Repository
	audit  Auditor
	now    clock
	action string
	apply  func(ap *models.Appointment, now time.Time) error
}

func (t *transition) execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := t.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	from := ap.Status
	if err := t.apply(ap, t.now()); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateAppointmentStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	t.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   t.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

type ConfirmAppointment struct {
	transition
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit Auditor,
	tz string,
) *ConfirmAppointment {
	return &ConfirmAppointment{transition{
		repo:   repo,
		audit:  audit,
		now:    salonClock(tz),
		action: "appointment_confirmed",
		apply:  domain.Confirm,
	}}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.execute(ctx, userID, appointmentID)
}

type CancelAppointment struct {
	transition
}

func NewCancelAppointment(
	repo domain.Repository,
	audit Auditor,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{transition{
		repo:   repo,
		audit:  audit,
		now:    salonClock(tz),
		action: "appointment_cancelled",
		apply:  domain.Cancel,
	}}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.execute(ctx, userID, appointmentID)
}
