package appointment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID *uint

	ClientID  uint
	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	policy   *schedule.Policy
	locker   Locker
	audit    Auditor
	metrics  *metrics.Metrics
	log      *zap.Logger
	timezone string
	now      clock
}

func NewCreateAppointment(
	repo domain.Repository,
	policy *schedule.Policy,
	locker Locker,
	audit Auditor,
	m *metrics.Metrics,
	log *zap.Logger,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		policy:   policy,
		locker:   locker,
		audit:    audit,
		metrics:  m,
		log:      log.Named("booking"),
		timezone: tz,
		now:      salonClock(tz),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (ap *models.Appointment, err error) {

	defer func() {
		uc.metrics.BookingOutcome(outcome(err))
	}()

	// --------------------------------------------------
	// 1️⃣ Data / hora no fuso do salão
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(uc.timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if start.Before(uc.now()) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	// --------------------------------------------------
	// 2️⃣ Cliente e serviço
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Dia aberto e horário da grade
	// --------------------------------------------------
	if reason, closed := uc.policy.Closure(start); closed {
		return nil, httperr.ErrBusinessReason("salon_closed", reason)
	}

	if !containsSlot(uc.policy.GenerateSlots(start), in.Time) {
		return nil, httperr.ErrBusinessReason(
			"outside_business_hours",
			"Horário fora do expediente: "+in.Time,
		)
	}

	// --------------------------------------------------
	// 4️⃣ Trava do dia (evita reserva dupla)
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, in.Date)
	if err != nil {
		if errors.Is(err, lock.ErrBusy) {
			return nil, httperr.ErrBusiness("booking_in_progress")
		}
		return nil, err
	}
	defer release()

	// --------------------------------------------------
	// 5️⃣ Criação com conflito e fechamento conferidos na transação
	// --------------------------------------------------
	ap = &models.Appointment{
		ClientID:    client.ID,
		ClientName:  client.Name,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Price:       svc.Price,
		Date:        in.Date,
		Time:        in.Time,
		Duration:    svc.DurationMin,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	err = uc.repo.CreateAppointment(ctx, ap, func(existing []models.Appointment) error {
		check := uc.policy.IsSlotAvailable(start, in.Time, svc.DurationMin, existing)
		if !check.Available {
			return httperr.ErrBusinessReason(string(check.Violation), check.Reason)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"date":    ap.Date,
			"time":    ap.Time,
			"service": ap.ServiceName,
		},
	})

	uc.log.Info("appointment created",
		zap.Uint("id", ap.ID),
		zap.String("date", ap.Date),
		zap.String("time", ap.Time),
		zap.String("service", ap.ServiceName),
	)

	return ap, nil
}

func containsSlot(slots []string, hm string) bool {
	for _, s := range slots {
		if s == hm {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	if err == nil {
		return "created"
	}
	if be, ok := httperr.AsBusiness(err); ok {
		return be.Code
	}
	return "error"
}
